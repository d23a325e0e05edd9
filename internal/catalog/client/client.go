// Package client talks to the product REST service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/odyssey-erp/productdesk/internal/catalog"
)

const productsPath = "/products"

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Recorder receives one observation per remote call.
type Recorder interface {
	ObserveRemoteCall(op string, status int, elapsed time.Duration)
}

// Config collects client settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *slog.Logger
	Metrics Recorder
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

// Client wraps the product service endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    Recorder
}

// New constructs a Client.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     logger,
		metrics:    cfg.Metrics,
	}
}

// List fetches every product.
func (c *Client) List(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, "list", http.MethodGet, productsPath, nil, nil, &products); err != nil {
		c.logger.Error("error fetching all products", slog.Any("error", err))
		return nil, err
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return products, nil
}

// Create sends name, price and sku; the service assigns id and missing letter.
// The Idempotency-Key comes from ctx when the caller attached one.
func (c *Client) Create(ctx context.Context, in catalog.Input) (catalog.Product, error) {
	var created catalog.Product
	key, ok := catalog.IdempotencyKeyFrom(ctx)
	if !ok {
		key = uuid.NewString()
	}
	header := http.Header{}
	header.Set("Idempotency-Key", key)
	if err := c.do(ctx, "create", http.MethodPost, productsPath, header, in, &created); err != nil {
		c.logger.Error("error adding product", slog.Any("error", err))
		return catalog.Product{}, err
	}
	return created, nil
}

// Update replaces name, price and sku of product id.
func (c *Client) Update(ctx context.Context, id int64, in catalog.Input) (catalog.Product, error) {
	var updated catalog.Product
	if err := c.do(ctx, "update", http.MethodPut, productPath(id), nil, in, &updated); err != nil {
		c.logger.Error("error updating product", slog.Int64("id", id), slog.Any("error", err))
		return catalog.Product{}, err
	}
	return updated, nil
}

// Delete removes product id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.do(ctx, "delete", http.MethodDelete, productPath(id), nil, nil, nil); err != nil {
		c.logger.Error("error deleting product", slog.Int64("id", id), slog.Any("error", err))
		return err
	}
	return nil
}

func productPath(id int64) string {
	return productsPath + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, op, method, path string, header http.Header, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: build %s request: %w", op, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(op, 0, start)
		return fmt.Errorf("client: %s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	c.observe(op, resp.StatusCode, start)

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s response: %w", op, err)
	}
	return nil
}

func (c *Client) observe(op string, status int, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveRemoteCall(op, status, time.Since(start))
}

type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}
	apiErr.Message = body.Message
	if apiErr.Message == "" {
		apiErr.Message = body.Detail
	}
	return apiErr
}
