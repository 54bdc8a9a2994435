package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pricesense/internal/config"
	"pricesense/internal/model"
)

const (
	productsPath = "/products"
	alertsPath   = "/alerts"
)

// Client wraps outbound calls to the tracking backend. Every failure it
// returns is an *Error; the fixed request timeout surfaces the same way as
// any other transport fault.
type Client struct {
	baseURL    string
	healthPath string
	userAgent  string
	client     *http.Client
	logger     zerolog.Logger
}

// NewClient constructs a gateway client from runtime settings.
func NewClient(cfg config.APIConfig, logger zerolog.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:3001"
	}

	healthPath := cfg.HealthPath
	if strings.TrimSpace(healthPath) == "" {
		healthPath = "/"
	}

	return &Client{
		baseURL:    baseURL,
		healthPath: healthPath,
		userAgent:  cfg.UserAgent,
		client:     &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "api_client").Logger(),
	}
}

// ListProducts fetches the tracked product set, optionally filtered by a
// free-text query. The raw payload is returned for the normalizer.
func (c *Client) ListProducts(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{}
	if strings.TrimSpace(query) != "" {
		params.Set("q", query)
	}
	_, payload, err := c.do(ctx, http.MethodGet, productsPath, params, nil)
	return payload, err
}

// AddProduct submits a new product for tracking and returns the created
// entity.
func (c *Client) AddProduct(ctx context.Context, draft model.ProductDraft) (model.Product, error) {
	_, payload, err := c.do(ctx, http.MethodPost, productsPath, nil, draft)
	if err != nil {
		return model.Product{}, err
	}

	var created model.Product
	if err := json.Unmarshal(payload, &created); err != nil {
		return model.Product{}, &Error{Message: fmt.Sprintf("decode created product: %v", err), Body: payload}
	}
	return created, nil
}

// DeleteProduct removes a product. 204 and 200 are the expected success
// statuses; other 2xx codes are accepted generously but logged, since the
// backend contract does not name them.
func (c *Client) DeleteProduct(ctx context.Context, id model.ID) error {
	if strings.TrimSpace(string(id)) == "" {
		return &Error{Message: "product id is required"}
	}

	status, _, err := c.do(ctx, http.MethodDelete, productsPath+"/"+url.PathEscape(string(id)), nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		c.logger.Warn().Int("status", status).Str("product_id", string(id)).
			Msg("unexpected success status for delete")
	}
	return nil
}

// ListAlerts fetches the triggered price-drop alerts.
func (c *Client) ListAlerts(ctx context.Context) (json.RawMessage, error) {
	_, payload, err := c.do(ctx, http.MethodGet, alertsPath, nil, nil)
	return payload, err
}

// ListHistory fetches the raw price history records for one product. Field
// names in the records vary by backend; normalization happens downstream.
func (c *Client) ListHistory(ctx context.Context, id model.ID) (json.RawMessage, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, &Error{Message: "product id is required"}
	}
	path := productsPath + "/" + url.PathEscape(string(id)) + "/history"
	_, payload, err := c.do(ctx, http.MethodGet, path, nil, nil)
	return payload, err
}

// Healthcheck probes the configured health path. Any 2xx body counts as
// reachable.
func (c *Client) Healthcheck(ctx context.Context) error {
	path := c.healthPath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	_, _, err := c.do(ctx, http.MethodGet, path, nil, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) (int, []byte, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, &Error{Message: fmt.Sprintf("encode request body: %v", err)}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, &Error{Message: fmt.Sprintf("create request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ua := strings.TrimSpace(c.userAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, newTransportError(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, newTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, payload, newStatusError(resp.StatusCode, payload)
	}

	return resp.StatusCode, payload, nil
}
