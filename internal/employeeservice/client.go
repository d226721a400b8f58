package employeeservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	employeeDatamodel "github.com/frahmantamala/employee-admin/internal/core/datamodel/employee"
)

// ErrTransport marks failures where no HTTP response was received.
var ErrTransport = errors.New("employee service unreachable")

// StatusError is a non-2xx answer from the employee service. Body holds the raw
// response text, which the console shows to the user verbatim.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("employee service returned status %d: %s", e.StatusCode, e.Body)
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HealthPath string
}

type Client struct {
	baseURL    string
	healthPath string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		healthPath: config.HealthPath,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// PhotoURL resolves a record's photoPath against the service base URL.
func (c *Client) PhotoURL(photoPath string) string {
	return c.baseURL + "/" + strings.TrimLeft(photoPath, "/")
}

// AddEmployee issues POST /employee/add with every field carried in the query string.
func (c *Client) AddEmployee(ctx context.Context, token string, query url.Values) error {
	endpoint := c.baseURL + "/employee/add?" + query.Encode()

	resp, err := c.do(ctx, http.MethodPost, endpoint, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readStatusError(resp)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	c.logger.Info("employee created", "status", resp.StatusCode)
	return nil
}

// ListEmployees fetches one page of the full employee list.
func (c *Client) ListEmployees(ctx context.Context, token string, page int) (*employeeDatamodel.Page, error) {
	endpoint := c.baseURL + "/employee?page=" + strconv.Itoa(page)

	resp, err := c.do(ctx, http.MethodGet, endpoint, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readStatusError(resp)
	}

	var result employeeDatamodel.Page
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode employee page: %w", err)
	}
	if result.Content == nil {
		result.Content = []employeeDatamodel.Employee{}
	}

	return &result, nil
}

// GetEmployee fetches a single record by id.
func (c *Client) GetEmployee(ctx context.Context, token, id string) (*employeeDatamodel.Lookup, error) {
	endpoint := c.baseURL + "/employee/" + url.PathEscape(id)

	resp, err := c.do(ctx, http.MethodGet, endpoint, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readStatusError(resp)
	}

	var result employeeDatamodel.Lookup
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode employee: %w", err)
	}

	return &result, nil
}

// Ping checks the configured health path. Without one it only checks that the
// service answers at all.
func (c *Client) Ping(ctx context.Context) error {
	path := c.healthPath
	if path == "" {
		path = "/"
	}

	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/"+strings.TrimLeft(path, "/"), "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 || (c.healthPath != "" && resp.StatusCode != http.StatusOK) {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("employee service request failed", "method", method, "error", err)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, req.URL.Path, err)
	}
	return resp, nil
}

func readStatusError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("%w: reading error body: %v", ErrTransport, err)
	}
	return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}
