// Package graphql is a minimal GraphQL-over-HTTP client: one POST per
// operation, JSON body {query, variables}, JSON response {data, errors}.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single request when the caller does not supply an
// *http.Client of its own.
const DefaultTimeout = 10 * time.Second

// maxBody caps how much of a response we are willing to read.
const maxBody = 8 << 20

// Client posts queries to a single endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	log      *zap.Logger
}

// New returns a Client for endpoint. A nil httpClient gets a default client
// with DefaultTimeout; a nil logger disables logging.
func New(endpoint string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: endpoint,
		http:     httpClient,
		log:      logger,
	}
}

// Endpoint returns the URL queries are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// Do runs query with variables and decodes the "data" member into out.
//
// Every failure comes back as a *FetchError. A non-2xx status is wrapped as
// a *StatusError; a response whose data is null but which lists errors is
// wrapped as a *ResponseError. Errors alongside partial data are logged and
// the data is still decoded.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, out any) error {
	if err := c.do(ctx, query, variables, out); err != nil {
		return &FetchError{Err: err}
	}
	return nil
}

func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("graphql request failed",
			zap.String("request_id", reqID),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	c.log.Debug("graphql response",
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return &StatusError{Code: resp.StatusCode}
	}

	var env response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	hasData := len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null"))
	if len(env.Errors) > 0 {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			msgs = append(msgs, e.Message)
		}
		if !hasData {
			return &ResponseError{Messages: msgs}
		}
		c.log.Warn("graphql partial response",
			zap.String("request_id", reqID),
			zap.Strings("errors", msgs))
	}
	if !hasData {
		return fmt.Errorf("decode response: missing data")
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
