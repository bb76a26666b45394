package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/RodrigoMBrauna/SistemaDeEstoque/internal/errors"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/service"
)

// APIError is a failed envelope returned by the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s (%d): %s", e.Code, e.Status, e.Message)
}

// Is maps server error codes back onto the domain sentinels.
func (e *APIError) Is(target error) bool {
	switch e.Code {
	case "NOT_FOUND":
		return target == apperrors.ErrNotFound
	case "VALIDATION_ERROR":
		return target == apperrors.ErrValidation
	case "UNAUTHORIZED":
		return target == apperrors.ErrUnauthorized
	case "STORAGE_ERROR":
		return target == apperrors.ErrStorage
	}
	return false
}

// Client calls the inventory API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient constructs a client for the API rooted at baseURL, e.g.
// http://localhost:8080/api.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) (*envelope, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success || resp.StatusCode >= 400 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Code: env.Code, Message: msg}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return &env, nil
}

func withQuery(path, q string) string {
	if q == "" {
		return path
	}
	return path + "?q=" + url.QueryEscape(q)
}

// ListProducts fetches the catalog, optionally filtered server-side by q.
func (c *Client) ListProducts(ctx context.Context, q string) ([]model.Product, error) {
	var products []model.Product
	if _, err := c.do(ctx, http.MethodGet, withQuery("/products", q), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct adds a product and returns it with its assigned id.
func (c *Client) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	var created model.Product
	_, err := c.do(ctx, http.MethodPost, "/products", p, &created)
	return created, err
}

// UpdateProduct replaces the product stored under p.ID.
func (c *Client) UpdateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	if p.ID == "" {
		return model.Product{}, apperrors.Validationf("product id is required")
	}
	var updated model.Product
	_, err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(p.ID), p, &updated)
	return updated, err
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
	return err
}

// ListUsers fetches the staff list, optionally filtered server-side by q.
func (c *Client) ListUsers(ctx context.Context, q string) ([]model.User, error) {
	var users []model.User
	if _, err := c.do(ctx, http.MethodGet, withQuery("/users", q), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser adds a user.
func (c *Client) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	var created model.User
	_, err := c.do(ctx, http.MethodPost, "/users", u, &created)
	return created, err
}

// UpdateUser replaces the user stored under u.ID.
func (c *Client) UpdateUser(ctx context.Context, u model.User) (model.User, error) {
	if u.ID == "" {
		return model.User{}, apperrors.Validationf("user id is required")
	}
	var updated model.User
	_, err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(u.ID), u, &updated)
	return updated, err
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
	return err
}

// Initialize asks the server to seed empty collections.
func (c *Client) Initialize(ctx context.Context) (service.InitResult, error) {
	var result service.InitResult
	_, err := c.do(ctx, http.MethodPost, "/initialize", nil, &result)
	return result, err
}

// Stats returns the server-computed inventory summary.
func (c *Client) Stats(ctx context.Context) (service.Stats, error) {
	var stats service.Stats
	_, err := c.do(ctx, http.MethodGet, "/inventory/stats", nil, &stats)
	return stats, err
}

// Attention returns the products that are low or out of stock.
func (c *Client) Attention(ctx context.Context) ([]service.ProductStatus, error) {
	var items []service.ProductStatus
	_, err := c.do(ctx, http.MethodGet, "/inventory/attention", nil, &items)
	return items, err
}

// Logout revokes the client's own token.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

// IsUnauthorized reports whether err came from a rejected token.
func IsUnauthorized(err error) bool {
	return errors.Is(err, apperrors.ErrUnauthorized)
}
