package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public catalog endpoint.
	DefaultBaseURL = "https://dummyjson.com"

	// DefaultLimit caps the number of products requested per fetch.
	DefaultLimit = 100

	// DefaultTimeout bounds the catalog request.
	DefaultTimeout = 10 * time.Second
)

// Product is one record from the external product catalog.
type Product struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Rating   float64 `json:"rating"`
}

// productList matches the catalog's response envelope.
type productList struct {
	Products []Product `json:"products"`
}

// Client fetches product metadata from the catalog API.
type Client struct {
	baseURL string
	limit   int
	httpc   *http.Client
	log     zerolog.Logger
}

// NewClient builds a catalog client. Zero values fall back to the defaults.
func NewClient(baseURL string, limit int, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		limit:   limit,
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// FetchAll returns the full product list, or an empty list on any failure:
// non-2xx status, network error, timeout, or a malformed body. It never
// returns an error — a failed fetch degrades to zero enrichment downstream,
// and no retries are performed.
func (c *Client) FetchAll(ctx context.Context) []Product {
	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, c.limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("catalog request build failed")
		return nil
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("catalog fetch failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("catalog returned non-success status")
		return nil
	}

	var list productList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		c.log.Warn().Err(err).Msg("catalog response decode failed")
		return nil
	}

	c.log.Info().Int("products", len(list.Products)).Msg("fetched product catalog")
	return list.Products
}

// BuildMapping keys catalog products by their numeric id for enrichment
// lookups. An empty or nil product list yields an empty mapping.
func BuildMapping(products []Product) map[int]Product {
	mapping := make(map[int]Product, len(products))
	for _, p := range products {
		mapping[p.ID] = p
	}
	return mapping
}
