// Package worker provides the outbound HTTP client for the external compute
// worker. Every call is a single request/response cycle; the client holds no
// session state between calls and performs no internal retries, so callers
// own backoff policy.
package worker

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

	apperrors "github.com/deepskylab/calib-ui-api/internal/errors"

	"github.com/deepskylab/calib-ui-api/internal/core"
	"github.com/deepskylab/calib-ui-api/internal/domain/model"
)

// Config captures the subset of worker-endpoint behaviour we need.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// Client talks to the compute worker's job endpoints.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ core.WorkerClient = (*Client)(nil)

// NewClient builds a worker client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("worker base url is required")
	}
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("worker base url %q must be a valid URL", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: baseURL, client: hc}, nil
}

// Submit forwards a normalized submission to POST /jobs/submit. The worker
// assigns the job identifier; a 4xx comes back as WorkerRejected with the
// worker's own message, anything transport-shaped as Transport.
func (c *Client) Submit(
	ctx context.Context,
	req *model.WorkerSubmitRequest,
) (*model.WorkerSubmitResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode submit payload")
	}

	status, raw, err := c.post(ctx, "/jobs/submit", body)
	if err != nil {
		return nil, apperrors.Transport("worker submit request failed", err)
	}
	if status >= 400 {
		return nil, c.classifyFailure(status, raw, "submit")
	}

	var resp model.WorkerSubmitResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, apperrors.Transport("unparsable worker submit response", err)
	}
	if resp.JobID == "" {
		return nil, apperrors.Transport("worker submit response is missing jobId", nil)
	}
	resp.HTTPStatus = status
	resp.Raw = raw
	return &resp, nil
}

// Status performs one synchronous GET /jobs/status call. A worker 404 maps
// to JobNotFound so pollers can tell "momentarily unqueryable" apart from a
// transport problem; any other failure maps to Transport.
func (c *Client) Status(ctx context.Context, jobID string) (*model.WorkerStatusResponse, error) {
	status, raw, err := c.get(ctx, "/jobs/status", jobID)
	if err != nil {
		return nil, apperrors.Transport("worker status request failed", err)
	}
	if status == http.StatusNotFound {
		return nil, apperrors.NotFound(fmt.Sprintf("worker has no record of job %q", jobID))
	}
	if status >= 400 {
		return nil, &apperrors.AppError{
			Code:       apperrors.ErrCodeTransport,
			Message:    "worker status fetch failed",
			HTTPStatus: status,
		}
	}

	var resp model.WorkerStatusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, apperrors.Transport("unparsable worker status response", err)
	}
	resp.HTTPStatus = status
	return &resp, nil
}

// Results fetches the full result payload from GET /jobs/results and returns
// it unmodified. No caching; every call re-fetches.
func (c *Client) Results(ctx context.Context, jobID string) (*model.WorkerResultsResponse, error) {
	status, raw, err := c.get(ctx, "/jobs/results", jobID)
	if err != nil {
		return nil, apperrors.Transport("worker results request failed", err)
	}
	if status == http.StatusNotFound {
		return nil, apperrors.NotFound(fmt.Sprintf("worker has no results for job %q", jobID))
	}
	if status >= 400 {
		return nil, &apperrors.AppError{
			Code:       apperrors.ErrCodeTransport,
			Message:    "worker results fetch failed",
			HTTPStatus: status,
		}
	}

	return &model.WorkerResultsResponse{HTTPStatus: status, Raw: raw}, nil
}

// Cancel forwards a cancel command to POST /jobs/cancel and returns the
// worker's acknowledgement whatever it is. Cancelling an already-terminal
// job is the worker's call to make; only transport failures are errors here.
func (c *Client) Cancel(ctx context.Context, jobID string) (*model.WorkerCancelResponse, error) {
	body, err := json.Marshal(map[string]string{"jobId": jobID})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode cancel payload")
	}

	status, raw, err := c.post(ctx, "/jobs/cancel", body)
	if err != nil {
		return nil, apperrors.Transport("worker cancel request failed", err)
	}

	return &model.WorkerCancelResponse{HTTPStatus: status, Raw: raw}, nil
}

// classifyFailure splits worker-reported rejections (4xx, worker's own
// diagnosis preserved) from everything else (retry-safe transport failures).
func (c *Client) classifyFailure(status int, raw []byte, op string) error {
	if status >= 400 && status < 500 {
		return apperrors.WorkerRejected(status, workerMessage(raw, op))
	}
	return &apperrors.AppError{
		Code:       apperrors.ErrCodeTransport,
		Message:    fmt.Sprintf("worker %s failed with status %d", op, status),
		HTTPStatus: status,
	}
}

// workerMessage pulls the worker's own error text out of a rejection body.
func workerMessage(raw []byte, op string) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fmt.Sprintf("worker rejected %s request", op)
}

func (c *Client) post(ctx context.Context, path string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("create worker request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, path, jobID string) (int, []byte, error) {
	u := c.baseURL + path + "?job_id=" + url.QueryEscape(jobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create worker request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("worker request failed: %w", err)
	}

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		if closeErr := resp.Body.Close(); closeErr != nil {
			return 0, nil, errors.Join(
				fmt.Errorf("read worker response body: %w", readErr),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return 0, nil, fmt.Errorf("read worker response body: %w", readErr)
	}
	if err := resp.Body.Close(); err != nil {
		return 0, nil, fmt.Errorf("close response body: %w", err)
	}

	return resp.StatusCode, raw, nil
}
