// Package logistics delivers external requisitions to the downstream
// logistics management information system over its JSON HTTP endpoint.
package logistics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/healthstack/stockops-api/internal/application/operations"
)

// Client implements operations.LogisticsSubmitter against the requisition
// endpoint of the logistics system.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

var _ operations.LogisticsSubmitter = (*Client)(nil)

// NewClient builds the client. The logistics system can take several seconds
// per requisition; timeout zero falls back to 60s.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// errorResponse is the error body shape of the logistics endpoint. Either
// field may carry the message depending on the failure.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SubmitRequisition posts the requisition payload. Any non-2xx status is an
// error carrying the first message the response body offers.
func (c *Client) SubmitRequisition(ctx context.Context, payload *operations.ExternalRequisitionPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("logistics: encode requisition: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("logistics: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("logistics: timeout or cancellation: %w", ctx.Err())
		}
		return fmt.Errorf("logistics: HTTP call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return fmt.Errorf("logistics: status %d, read response: %w", resp.StatusCode, err)
	}
	return fmt.Errorf("logistics: status %d: %s", resp.StatusCode, firstErrorMessage(raw))
}

// firstErrorMessage extracts the most specific message the body offers,
// falling back to the raw body.
func firstErrorMessage(raw []byte) string {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil {
		if er.Error != "" {
			return er.Error
		}
		if er.Message != "" {
			return er.Message
		}
	}
	return string(raw)
}
