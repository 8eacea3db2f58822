package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/swiftcart/storefront-state/internal/state"
	"github.com/swiftcart/storefront-state/pkg/config"
	pkgerrors "github.com/swiftcart/storefront-state/pkg/errors"
)

const (
	defaultBaseURL             = "https://fakestoreapi.com"
	errorBodyReadLimit   int64 = 1024
	defaultClientTimeout       = 10 * time.Second
)

// Client talks to the upstream product catalog. It backs product lookups and
// the background review reconciliation of the state store.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured catalog base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds a catalog client from configuration.
func NewClient(cfg config.CatalogConfig, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimSpace(cfg.BaseURL),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		client.httpClient.Timeout = defaultClientTimeout
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client
}

// Product is the catalog's view of a sellable item.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

// Product fetches a single catalog product by ID.
func (c *Client) Product(ctx context.Context, productID string) (*Product, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog client not configured")
	}
	trimmed := strings.TrimSpace(productID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product ID is required")
	}

	var apiResp struct {
		ID          json.Number `json:"id"`
		Title       string      `json:"title"`
		Price       float64     `json:"price"`
		Description string      `json:"description"`
		Category    string      `json:"category"`
		Image       string      `json:"image"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("products/%s", url.PathEscape(trimmed)), &apiResp); err != nil {
		return nil, err
	}

	return &Product{
		ID:          apiResp.ID.String(),
		Title:       apiResp.Title,
		Price:       apiResp.Price,
		Description: apiResp.Description,
		Category:    apiResp.Category,
		Image:       apiResp.Image,
	}, nil
}

// ProductReviews fetches the reviews the catalog holds for a product. It
// satisfies the review source expected by the state store.
func (c *Client) ProductReviews(ctx context.Context, productID string) ([]state.Review, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog client not configured")
	}
	trimmed := strings.TrimSpace(productID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product ID is required")
	}

	var apiResp []struct {
		ID       int64  `json:"id"`
		Text     string `json:"text"`
		Rating   int    `json:"rating"`
		Username string `json:"username"`
		Date     string `json:"date"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("products/%s/reviews", url.PathEscape(trimmed)), &apiResp); err != nil {
		return nil, err
	}

	reviews := make([]state.Review, 0, len(apiResp))
	for _, r := range apiResp {
		reviews = append(reviews, state.Review{
			ID:        r.ID,
			ProductID: trimmed,
			Text:      r.Text,
			Rating:    r.Rating,
			Username:  r.Username,
			Date:      r.Date,
		})
	}

	return reviews, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	endpoint := fmt.Sprintf("%s/%s", strings.TrimRight(c.baseURL, "/"), path)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build catalog request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute catalog request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return pkgerrors.New(pkgerrors.CodeNotFound, "catalog entry not found")
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "catalog request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}

	return nil
}
