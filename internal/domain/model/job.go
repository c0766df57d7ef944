// Package model defines the core data types for the calibration job orchestration layer.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// JobType represents the kind of work a job performs on the compute worker.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type JobType string

// JobStatus represents the current lifecycle state of a job.
type JobStatus string

// FrameType identifies the kind of calibration frame a result concerns.
type FrameType string

const (
	// JobTypeCalibration represents a frame-calibration job.
	JobTypeCalibration JobType = "calibration"
	// JobTypeSuperdarkCreation represents a superdark synthesis job.
	JobTypeSuperdarkCreation JobType = "superdark_creation"

	// JobStatusPending indicates the worker has accepted the job but not started it.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates the worker is processing the job.
	JobStatusRunning JobStatus = "running"
	// JobStatusSuccess indicates the job finished and produced a result.
	JobStatusSuccess JobStatus = "success"
	// JobStatusFailed indicates the job terminated with an error.
	JobStatusFailed JobStatus = "failed"
	// JobStatusCancelled indicates the job was cancelled before reaching a result.
	JobStatusCancelled JobStatus = "cancelled"

	// FrameTypeLight is a light (science) frame.
	FrameTypeLight FrameType = "light"
	// FrameTypeDark is a dark calibration frame.
	FrameTypeDark FrameType = "dark"
	// FrameTypeFlat is a flat-field calibration frame.
	FrameTypeFlat FrameType = "flat"
	// FrameTypeBias is a bias calibration frame.
	FrameTypeBias FrameType = "bias"
)

// UnmarshalText implements encoding.TextUnmarshaler for JobType to allow env parsing.
func (t *JobType) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	jt := JobType(v)
	if jt.Valid() {
		*t = jt
		return nil
	}
	return fmt.Errorf("invalid JobType: %q", v)
}

// Valid returns true if the JobType is valid.
func (t JobType) Valid() bool {
	return t == JobTypeCalibration || t == JobTypeSuperdarkCreation
}

// Valid returns true if the JobStatus is valid.
func (s JobStatus) Valid() bool {
	return s == JobStatusPending || s == JobStatusRunning || s == JobStatusSuccess ||
		s == JobStatusFailed || s == JobStatusCancelled
}

// Terminal returns true if no transition leaves this status.
func (s JobStatus) Terminal() bool {
	return s == JobStatusSuccess || s == JobStatusFailed || s == JobStatusCancelled
}

// Valid returns true if the FrameType is valid.
func (f FrameType) Valid() bool {
	return f == FrameTypeLight || f == FrameTypeDark || f == FrameTypeFlat || f == FrameTypeBias
}

// FrameTypes lists every frame type. Used for cache invalidation fan-out.
func FrameTypes() []FrameType {
	return []FrameType{FrameTypeLight, FrameTypeDark, FrameTypeFlat, FrameTypeBias}
}

// JobRecord is one row of the worker-written job log. The job_id is assigned
// by the worker at submission time and is the only identity shared across both
// systems; this service never generates or mutates it.
type JobRecord struct {
	JobID       string          `json:"job_id"                db:"job_id"`
	JobType     JobType         `json:"job_type"              db:"job_type"`
	Status      JobStatus       `json:"status"                db:"status"`
	Progress    float64         `json:"progress"              db:"progress"`
	Result      json.RawMessage `json:"result,omitempty"      db:"result"`
	Diagnostics json.RawMessage `json:"diagnostics,omitempty" db:"diagnostics"`
	Warnings    json.RawMessage `json:"warnings,omitempty"    db:"warnings"`
	Error       *string         `json:"error,omitempty"       db:"error"`
	CreatedAt   time.Time       `json:"created_at"            db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"            db:"updated_at"`
}

// CheckInvariants verifies the record-level invariants the worker is expected
// to uphold: result present iff success, non-empty error when failed.
func (r *JobRecord) CheckInvariants() error {
	hasResult := len(r.Result) > 0 && string(r.Result) != "null"
	if r.Status == JobStatusSuccess && !hasResult {
		return errors.New("successful job record is missing a result")
	}
	if r.Status != JobStatusSuccess && hasResult {
		return fmt.Errorf("job record with status %q carries a result", r.Status)
	}
	if r.Status == JobStatusFailed && (r.Error == nil || strings.TrimSpace(*r.Error) == "") {
		return errors.New("failed job record is missing an error")
	}
	return nil
}

// CalibrationRequest is the dashboard-facing submission payload. Field names
// follow the UI conventions; Normalize maps them onto the worker schema.
type CalibrationRequest struct {
	InputFrames []string        `json:"inputFrames"`
	MasterBias  string          `json:"masterBias,omitempty"`
	MasterDark  string          `json:"masterDark,omitempty"`
	MasterFlat  string          `json:"masterFlat,omitempty"`
	Settings    json.RawMessage `json:"advancedSettings,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	ProjectID   string          `json:"projectId"`
	UserID      string          `json:"userId"`
}

// Validate checks the request for local completeness. Only the input frame
// list is required; frame existence, master references, and project or user
// identifiers are the worker's to accept or reject.
func (r *CalibrationRequest) Validate() error {
	if len(r.InputFrames) == 0 {
		return errors.New("inputFrames is required and cannot be empty")
	}
	for _, f := range r.InputFrames {
		if strings.TrimSpace(f) == "" {
			return errors.New("inputFrames cannot contain empty identifiers")
		}
	}
	return nil
}

// Normalize renames and flattens the request into the worker's submit schema.
func (r *CalibrationRequest) Normalize() *WorkerSubmitRequest {
	return &WorkerSubmitRequest{
		JobType:      JobTypeCalibration,
		InputFiles:   r.InputFrames,
		Settings:     r.Settings,
		Metadata:     r.Metadata,
		ProjectID:    r.ProjectID,
		UserID:       r.UserID,
		MasterBiasID: r.MasterBias,
		MasterDarkID: r.MasterDark,
		MasterFlatID: r.MasterFlat,
	}
}

// SuperdarkRequest is the dashboard-facing payload for superdark synthesis.
type SuperdarkRequest struct {
	DarkFrames []string        `json:"darkFrames"`
	Settings   json.RawMessage `json:"advancedSettings,omitempty"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	ProjectID  string          `json:"projectId"`
	UserID     string          `json:"userId"`
}

// Validate checks the superdark request for local completeness. As with
// calibration, only the frame list is checked here.
func (r *SuperdarkRequest) Validate() error {
	if len(r.DarkFrames) == 0 {
		return errors.New("darkFrames is required and cannot be empty")
	}
	for _, f := range r.DarkFrames {
		if strings.TrimSpace(f) == "" {
			return errors.New("darkFrames cannot contain empty identifiers")
		}
	}
	return nil
}

// Normalize maps the superdark request onto the worker's submit schema.
func (r *SuperdarkRequest) Normalize() *WorkerSubmitRequest {
	return &WorkerSubmitRequest{
		JobType:    JobTypeSuperdarkCreation,
		InputFiles: r.DarkFrames,
		Settings:   r.Settings,
		Metadata:   r.Metadata,
		ProjectID:  r.ProjectID,
		UserID:     r.UserID,
	}
}

// LatestResultQuery identifies a "latest successful result" lookup.
type LatestResultQuery struct {
	ProjectID string
	UserID    string
	FrameType FrameType
}

// Validate checks the query keys.
func (q *LatestResultQuery) Validate() error {
	if strings.TrimSpace(q.ProjectID) == "" {
		return errors.New("projectId is required and cannot be empty")
	}
	if !q.FrameType.Valid() {
		return fmt.Errorf("frameType must be one of: light, dark, flat, bias (got %q)", q.FrameType)
	}
	return nil
}

// StatusResponse is the minimal polling contract returned to the UI.
// Everything else in the worker's raw status payload is dropped so the
// contract stays stable as the worker schema grows.
type StatusResponse struct {
	Progress float64   `json:"progress"`
	Status   JobStatus `json:"status"`
}

// LatestResultResponse is returned by the latest-result lookup.
type LatestResultResponse struct {
	JobID    string          `json:"jobId"`
	Status   JobStatus       `json:"status"`
	Progress float64         `json:"progress"`
	Result   json.RawMessage `json:"result,omitempty"`
	Error    *string         `json:"error,omitempty"`
	Warnings json.RawMessage `json:"warnings,omitempty"`
}

// LatestResultFromRecord shapes a stored record into the UI response.
func LatestResultFromRecord(rec *JobRecord) *LatestResultResponse {
	return &LatestResultResponse{
		JobID:    rec.JobID,
		Status:   rec.Status,
		Progress: rec.Progress,
		Result:   rec.Result,
		Error:    rec.Error,
		Warnings: rec.Warnings,
	}
}
