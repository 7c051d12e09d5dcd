package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/uillasnr/mobilefinance/internal/model"
)

// DefaultTimeout bounds a single API call when none is configured.
const DefaultTimeout = 10 * time.Second

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("finance API %s: status %d: %s", e.Endpoint, e.Code, e.Body)
}

// Client reads snapshots from the remote finance API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates an API client. A zero timeout uses DefaultTimeout.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Transactions fetches GET /transactions.
func (c *Client) Transactions(ctx context.Context) ([]model.Transaction, error) {
	body, err := c.get(ctx, "/transactions")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return (&JSONDecoder{}).Decode(body)
}

// Goals fetches GET /goals.
func (c *Client) Goals(ctx context.Context) ([]model.Goal, error) {
	body, err := c.get(ctx, "/goals")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return DecodeGoals(body)
}

func (c *Client) get(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("finance API %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	return resp.Body, nil
}
