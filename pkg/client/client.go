// Package client provides a typed HTTP client for the advance service. It
// carries the form front-end's transport contract: transient failures are
// retried a bounded number of times with a fixed delay, and schedule
// exports are never retried once the primary call has succeeded.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/advancehq/salary-advance/pkg/constants"
	"go.uber.org/zap"
)

// AdvanceRequest mirrors the service's request body.
type AdvanceRequest struct {
	GrossSalary         float64  `json:"gross_salary"`
	PayFrequency        string   `json:"pay_frequency"`
	AdvanceAmount       float64  `json:"advance_amount"`
	LoanAmount          *float64 `json:"loan_amount,omitempty"`
	InterestRate        *float64 `json:"interest_rate,omitempty"`
	LoanTerm            *int     `json:"loan_term,omitempty"`
	IncludeAmortization bool     `json:"include_amortization,omitempty"`
}

// ScheduleRow is one month of an amortization schedule.
type ScheduleRow struct {
	Month     int     `json:"Month"`
	Payment   float64 `json:"Payment"`
	Principal float64 `json:"Principal"`
	Interest  float64 `json:"Interest"`
	Balance   float64 `json:"Balance"`
}

// Decision is the structured decision payload.
type Decision struct {
	Eligible             bool          `json:"eligible"`
	AdvanceApproved      bool          `json:"advance_approved"`
	MaxAdvance           float64       `json:"max_advance"`
	ApprovedAmount       float64       `json:"approved_amount"`
	Fee                  float64       `json:"fee"`
	TotalRepayable       *float64      `json:"total_repayable,omitempty"`
	AmortizationSchedule []ScheduleRow `json:"amortization_schedule,omitempty"`
	Message              string        `json:"message"`
	LoanID               *string       `json:"loan_id,omitempty"`
}

// Export is the CSV payload returned in export mode.
type Export struct {
	CSVData  string `json:"csv_data"`
	Filename string `json:"filename"`
}

// APIError is a non-2xx response from the service.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
}

// Options tune the client's transport behavior. Zero values fall back to
// the front-end defaults.
type Options struct {
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// Client calls the advance service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

// New creates a Client for the service at baseURL.
func New(baseURL string, logger *zap.Logger, opts Options) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = constants.DefaultClientRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = constants.DefaultClientRetryDelaySeconds * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = constants.DefaultClientTimeoutSeconds * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: opts.Timeout},
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		logger:     logger,
	}
}

// ComputeAdvance submits an advance request, retrying transient failures.
func (c *Client) ComputeAdvance(ctx context.Context, req AdvanceRequest) (*Decision, error) {
	var decision Decision
	if err := c.postWithRetry(ctx, "/calculate_advance", req, &decision); err != nil {
		return nil, err
	}
	return &decision, nil
}

// ExportSchedule requests the amortization schedule as CSV. The export is a
// single attempt: if the primary compute call already succeeded, a failed
// export is surfaced to the caller rather than retried.
func (c *Client) ExportSchedule(ctx context.Context, req AdvanceRequest) (*Export, error) {
	var export Export
	if err := c.post(ctx, "/calculate_advance?export_csv=true", req, &export); err != nil {
		return nil, err
	}
	return &export, nil
}

// GetLoan fetches a recorded loan as raw JSON fields.
func (c *Client) GetLoan(ctx context.Context, loanID string) (map[string]interface{}, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/loan/"+loanID, nil)
	if err != nil {
		return nil, err
	}

	var record map[string]interface{}
	if err := c.do(httpReq, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// Health checks the service liveness probe.
func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	var status map[string]string
	if err := c.do(httpReq, &status); err != nil {
		return err
	}
	if status["status"] != "healthy" {
		return fmt.Errorf("unexpected health status %q", status["status"])
	}
	return nil
}

func (c *Client) postWithRetry(ctx context.Context, path string, payload, out interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		lastErr = c.post(ctx, path, payload, out)
		if lastErr == nil {
			return nil
		}
		if !isTransient(lastErr) {
			return lastErr
		}
		if attempt == c.maxRetries {
			break
		}

		c.logger.Warn("request failed, retrying",
			zap.String("op", "client.postWithRetry"),
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}
	return lastErr
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		var detail struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&detail)
		return &APIError{Status: resp.StatusCode, Detail: detail.Detail}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// isTransient reports whether a failure may succeed on retry: network
// errors and server-side 5xx responses qualify, client errors do not.
func isTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return true
}
