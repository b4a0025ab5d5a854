package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func setupTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/api/health", HandleHealth)
	app.Post("/api/analyze", HandleAnalyze)
	return app
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %q", result["status"])
	}

	if result["engine"] != "fiber" {
		t.Errorf("expected engine=fiber, got %q", result["engine"])
	}
}

func TestAnalyzeEndpointRequiresFile(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("POST", "/api/analyze", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=----test")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	// Should fail because no file in the body
	if resp.StatusCode == fiber.StatusOK {
		t.Error("expected non-200 for missing file")
	}
}

const feedUpload = `TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
T001|2024-01-01|P101|Widget|10|5.00|C001|North
T002|2024-01-01|P102|Gadget|3|20.00|C002|South
X003|2024-01-02|P103|Cable|7|4.00|C003|East
`

func analyzeRequest(t *testing.T, fields map[string]string) AnalyzeResponse {
	t.Helper()
	app := setupTestApp()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "sales_data.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(feedUpload)); err != nil {
		t.Fatal(err)
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatal(err)
		}
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/api/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var result AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return result
}

func TestAnalyzeEndpoint(t *testing.T) {
	result := analyzeRequest(t, nil)

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}

	// 3 data lines, X003 invalid, 2 analyzed.
	if result.Summary.TotalInput != 3 || result.Summary.Invalid != 1 || result.Summary.FinalCount != 2 {
		t.Errorf("summary: %+v", result.Summary)
	}

	if result.Analytics == nil {
		t.Fatal("expected analytics in response")
	}
	// 50 + 60.
	if result.Analytics.TotalRevenue != 110.0 {
		t.Errorf("total revenue: %f", result.Analytics.TotalRevenue)
	}

	// Regions come from all parsed records, not just the filtered set.
	if len(result.Regions) != 3 {
		t.Errorf("regions: %v", result.Regions)
	}
}

func TestAnalyzeEndpointWithFilters(t *testing.T) {
	result := analyzeRequest(t, map[string]string{
		"region":     "North",
		"min_amount": "10",
	})

	if result.Summary.FilteredByRegion != 1 || result.Summary.FinalCount != 1 {
		t.Errorf("summary: %+v", result.Summary)
	}
	if result.Analytics == nil || result.Analytics.TotalRevenue != 50.0 {
		t.Errorf("analytics: %+v", result.Analytics)
	}
}

func TestAnalyzeEndpointNoSurvivors(t *testing.T) {
	result := analyzeRequest(t, map[string]string{"region": "West"})

	if !result.Success {
		t.Fatal("an empty filtered set is still a successful analysis")
	}
	if result.Analytics != nil {
		t.Error("no analytics should be computed over an empty set")
	}
	if result.Summary.FilteredByRegion != 2 {
		t.Errorf("summary: %+v", result.Summary)
	}
}

func TestAnalyzeEndpointBadAmount(t *testing.T) {
	app := setupTestApp()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "sales_data.txt")
	fw.Write([]byte(feedUpload))
	mw.WriteField("min_amount", "not-a-number")
	mw.Close()

	req := httptest.NewRequest("POST", "/api/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}
