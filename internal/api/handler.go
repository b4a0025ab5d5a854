package api

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/rahulsharma-ghub/sales-analytics-system/internal/analytics"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/feed"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/models"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/parser"
	"github.com/rahulsharma-ghub/sales-analytics-system/internal/validator"
)

// AnalyzeResponse is the JSON response from the /api/analyze endpoint.
type AnalyzeResponse struct {
	Success   bool                     `json:"success"`
	Error     string                   `json:"error,omitempty"`
	Summary   models.ValidationSummary `json:"summary"`
	Analytics *analytics.Bundle        `json:"analytics,omitempty"`
	Regions   []string                 `json:"regions,omitempty"`
}

// NewApp builds the fiber application with all routes registered. The
// analyze endpoint works on uploaded feeds only and never touches the
// catalog or the filesystem.
func NewApp(log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "sales-analytics-system",
		BodyLimit: 32 << 20,
	})

	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Msg("request")
		return err
	})

	app.Get("/api/health", HandleHealth)
	app.Post("/api/analyze", HandleAnalyze)
	return app
}

// HandleHealth reports service liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

// HandleAnalyze accepts a multipart feed upload under form field "file",
// with optional region, min_amount, max_amount, top and threshold fields,
// and responds with the validation summary and analytics views.
func HandleAnalyze(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	f, err := header.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to open upload: %v", err))
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to read upload: %v", err))
	}

	opts := models.FilterOptions{Region: c.FormValue("region")}
	if opts.MinAmount, err = optionalFloat(c.FormValue("min_amount")); err != nil {
		return writeError(c, fiber.StatusBadRequest, "min_amount must be a number")
	}
	if opts.MaxAmount, err = optionalFloat(c.FormValue("max_amount")); err != nil {
		return writeError(c, fiber.StatusBadRequest, "max_amount must be a number")
	}

	topN := intOrDefault(c.FormValue("top"), 5)
	lowThreshold := intOrDefault(c.FormValue("threshold"), 10)

	lines := feed.NewReader(nil, zerolog.Nop()).LinesFromBytes(raw)
	txns := parser.ParseLines(lines)
	valid, summary := validator.Apply(txns, opts)
	summary.TotalInput = len(lines)
	summary.Invalid += len(lines) - len(txns)

	resp := AnalyzeResponse{
		Success: true,
		Summary: summary,
		Regions: validator.Regions(txns),
	}
	if len(valid) > 0 {
		bundle := analytics.Compute(valid, topN, lowThreshold)
		resp.Analytics = &bundle
	}
	return c.JSON(resp)
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(AnalyzeResponse{Success: false, Error: msg})
}

// optionalFloat parses a form value, nil when the field is absent.
func optionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func intOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
