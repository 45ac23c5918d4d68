// Package supabase implements the repositories against Supabase's PostgREST
// API using the service role key. It is used when no direct database URL is
// configured.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"projectboard/internal/domain/repositories"
	"projectboard/internal/repository/postgres"
)

// Client performs authenticated PostgREST requests
type Client struct {
	restURL    string
	serviceKey string
	tables     *postgres.TableNames
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a PostgREST client for the project at supabaseURL.
// Requires the service role key (SUPABASE_KEY) so row-level security does not
// hide other users' projects.
func NewClient(supabaseURL, serviceKey string, tables *postgres.TableNames, logger *slog.Logger) (*Client, error) {
	if supabaseURL == "" {
		return nil, errors.New("supabase URL cannot be empty")
	}
	if serviceKey == "" {
		return nil, errors.New("supabase service key cannot be empty")
	}
	return &Client{
		restURL:    strings.TrimRight(supabaseURL, "/") + "/rest/v1",
		serviceKey: serviceKey,
		tables:     tables,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}, nil
}

// restError is the PostgREST error body
type restError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *restError) Error() string {
	return fmt.Sprintf("postgrest %d (%s): %s", e.Status, e.Code, e.Message)
}

// isDuplicate reports a unique constraint violation
func isDuplicate(err error) bool {
	var re *restError
	return errors.As(err, &re) && (re.Code == "23505" || re.Status == http.StatusConflict)
}

// isCheckViolation reports a CHECK constraint violation
func isCheckViolation(err error) bool {
	var re *restError
	return errors.As(err, &re) && re.Code == "23514"
}

// do sends a request to /rest/v1/{table}. When out is non-nil the response
// body is decoded into it. prefer sets the Prefer header (e.g. return=representation).
func (c *Client) do(ctx context.Context, method, table string, query url.Values, body any, prefer string, out any) error {
	endpoint := c.restURL + "/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, table, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		restErr := &restError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(data, restErr); jsonErr != nil || restErr.Message == "" {
			restErr.Message = strings.TrimSpace(string(data))
		}
		c.logger.Debug("postgrest request failed",
			"method", method,
			"table", table,
			"status", resp.StatusCode,
			"code", restErr.Code,
		)
		return restErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Ping checks that PostgREST answers for the skills table
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := url.Values{}
	query.Set("select", "id")
	query.Set("limit", "1")
	return c.do(ctx, http.MethodGet, c.tables.Skills, query, nil, "", nil)
}

var _ repositories.Pinger = (*Client)(nil)

// eq builds a PostgREST equality filter value
func eq(value string) string {
	return "eq." + value
}
