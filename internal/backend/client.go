package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/Raymond9734/customer-admin-portal/internal/models"
)

// Client defines the interface for the remote customer API
type Client interface {
	// Login exchanges admin credentials for a session token
	Login(ctx context.Context, username, password string) (string, error)

	// ListCustomers fetches one page of customers matching the query
	ListCustomers(ctx context.Context, token string, q models.ListQuery) (*models.CustomerPage, error)

	// CreateCustomer creates a new customer record
	CreateCustomer(ctx context.Context, token string, req CreateCustomerRequest) (*models.Customer, error)

	// UpdateCustomer applies a partial update to an existing record
	UpdateCustomer(ctx context.Context, token string, id int64, req UpdateCustomerRequest) (*models.Customer, error)

	// DeleteCustomer removes a customer record
	DeleteCustomer(ctx context.Context, token string, id int64) error

	// Health checks whether the backend is reachable
	Health(ctx context.Context) error
}

// httpClient implements Client against the backend REST API
type httpClient struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Config holds backend client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// New creates a backend API client
func New(cfg Config, logger *slog.Logger) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Login exchanges admin credentials for a session token via POST /api/Admin/login
func (c *httpClient) Login(ctx context.Context, username, password string) (string, error) {
	body := loginRequest{Username: username, Password: password}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/Admin/login", "", nil, body, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", models.ErrBackendWithMsg("login response did not contain a token")
	}
	return resp.Token, nil
}

// ListCustomers fetches one page of customers via GET /api/customer.
// The portal's 0-based page index is translated to the backend's 1-based
// numbering, and an empty search term is omitted from the request entirely.
func (c *httpClient) ListCustomers(ctx context.Context, token string, q models.ListQuery) (*models.CustomerPage, error) {
	q.Normalize()

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.BackendPage()))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	page := &models.CustomerPage{}
	if err := c.do(ctx, http.MethodGet, "/api/customer", token, params, nil, page); err != nil {
		return nil, err
	}
	return page, nil
}

// CreateCustomer creates a record via POST /api/customer
func (c *httpClient) CreateCustomer(ctx context.Context, token string, req CreateCustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{}
	if err := c.do(ctx, http.MethodPost, "/api/customer", token, nil, req, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer applies a partial update via PUT /api/customer/{id}.
// Nil fields in req are absent from the request body, so the backend
// never receives an explicit clear.
func (c *httpClient) UpdateCustomer(ctx context.Context, token string, id int64, req UpdateCustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{}
	path := fmt.Sprintf("/api/customer/%d", id)
	if err := c.do(ctx, http.MethodPut, path, token, nil, req, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a record via DELETE /api/customer/{id}
func (c *httpClient) DeleteCustomer(ctx context.Context, token string, id int64) error {
	path := fmt.Sprintf("/api/customer/%d", id)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil, nil)
}

// Health checks backend reachability. Any HTTP response counts as
// reachable; only transport failures are reported.
func (c *httpClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend health check failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// do executes one backend request and decodes the response into out
// when out is non-nil.
func (c *httpClient) do(ctx context.Context, method, path, token string, params url.Values, in, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("backend request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return &models.AppError{
			Code:    "BACKEND_UNAVAILABLE",
			Message: "backend unavailable",
			Err:     models.ErrBackendUnavailable,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode backend response: %w", err)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	return nil
}

// errorFromResponse maps a non-2xx backend response to an AppError,
// preserving the raw response body as the message when one is present.
func (c *httpClient) errorFromResponse(resp *http.Response, method, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(raw))

	c.logger.Warn("backend returned error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg == "" {
			msg = "unauthorized"
		}
		return &models.AppError{Code: "UNAUTHORIZED", Message: msg, Err: models.ErrUnauthorized}

	case http.StatusNotFound:
		if msg == "" {
			msg = "resource not found"
		}
		return &models.AppError{Code: "NOT_FOUND", Message: msg, Err: models.ErrNotFound}

	default:
		if msg == "" {
			msg = fmt.Sprintf("backend returned status %d", resp.StatusCode)
		}
		return &models.AppError{Code: "BACKEND_ERROR", Message: msg}
	}
}
