// Package catalog fetches the external product catalog used for
// enrichment. The catalog is a black-box collaborator: on any transport,
// status or decode failure the fetch yields an empty sequence instead of
// an error, so a dead catalog never fails a pipeline run.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesworks/salespipe/internal/domain"
)

// Client talks to the product catalog service.
type Client struct {
	baseURL   string
	pageLimit int
	httpc     *http.Client
	log       zerolog.Logger
}

// NewClient creates a catalog client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration, pageLimit int, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		pageLimit: pageLimit,
		httpc:     &http.Client{Timeout: timeout},
		log:       logger,
	}
}

// FetchAll returns every catalog product, or an empty slice if the catalog
// is unreachable. Failures are logged, never propagated.
func (c *Client) FetchAll(ctx context.Context) []domain.CatalogProduct {
	products, err := c.fetchProducts(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("catalog fetch failed, continuing with empty catalog")
		return nil
	}
	c.log.Info().Int("products", len(products)).Msg("fetched product catalog")
	return products
}

func (c *Client) fetchProducts(ctx context.Context) ([]domain.CatalogProduct, error) {
	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, c.pageLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}

	var body struct {
		Products []domain.CatalogProduct `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	return body.Products, nil
}

// BuildLookup maps catalog IDs to product info. Entries missing an id or a
// title are discarded.
func BuildLookup(products []domain.CatalogProduct) map[int]domain.ProductInfo {
	lookup := make(map[int]domain.ProductInfo, len(products))
	for _, p := range products {
		if p.ID == 0 || p.Title == "" {
			continue
		}
		lookup[p.ID] = domain.ProductInfo{
			Title:    p.Title,
			Category: p.Category,
			Brand:    p.Brand,
			Rating:   p.Rating,
		}
	}
	return lookup
}
