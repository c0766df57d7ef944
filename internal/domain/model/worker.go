package model

import "encoding/json"

// WorkerSubmitRequest is the wire shape the compute worker expects on
// POST /jobs/submit. The dashboard-facing request types normalize into it.
type WorkerSubmitRequest struct {
	JobType      JobType         `json:"job_type"`
	InputFiles   []string        `json:"input_files"`
	Settings     json.RawMessage `json:"settings,omitempty"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	ProjectID    string          `json:"project_id"`
	UserID       string          `json:"user_id"`
	MasterBiasID string          `json:"master_bias_id,omitempty"`
	MasterDarkID string          `json:"master_dark_id,omitempty"`
	MasterFlatID string          `json:"master_flat_id,omitempty"`
}

// WorkerSubmitResponse is the worker's acknowledgement of a submission.
// Raw holds the worker body verbatim so callers can pass extra
// worker-assigned fields through untouched.
type WorkerSubmitResponse struct {
	JobID      string          `json:"jobId"`
	Status     JobStatus       `json:"status"`
	HTTPStatus int             `json:"-"`
	Raw        json.RawMessage `json:"-"`
}

// WorkerStatusResponse is the decoded subset of the worker's status payload.
// Only progress and status are consumed; the rest is dropped on purpose.
type WorkerStatusResponse struct {
	Progress   float64   `json:"progress"`
	Status     JobStatus `json:"status"`
	HTTPStatus int       `json:"-"`
}

// WorkerResultsResponse carries the worker's full result payload verbatim.
type WorkerResultsResponse struct {
	HTTPStatus int
	Raw        json.RawMessage
}

// WorkerCancelResponse carries the worker's cancellation acknowledgement
// verbatim. The worker decides whether cancelling a terminal job is a no-op
// or an error; this service does not interpret the body.
type WorkerCancelResponse struct {
	HTTPStatus int
	Raw        json.RawMessage
}
