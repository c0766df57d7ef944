package httpx

import (
	"errors"
	"net/http"

	"github.com/deepskylab/calib-ui-api/internal/domain/model"
	"github.com/deepskylab/calib-ui-api/internal/service"
)

// JobHandlers provides HTTP handlers for calibration job operations.
type JobHandlers struct {
	Submissions   *service.SubmissionService
	Status        *service.StatusService
	Results       *service.ResultsService
	LatestResults *service.LatestResultService
	Cancellations *service.CancellationService
}

// SubmitCalibration handles HTTP requests to submit a calibration job.
// The worker's response, status code included, is passed through verbatim.
func (h *JobHandlers) SubmitCalibration(w http.ResponseWriter, r *http.Request) {
	var req model.CalibrationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.Submissions.SubmitCalibration(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteRaw(w, resp.HTTPStatus, resp.Raw)
}

// SubmitSuperdark handles HTTP requests to submit a superdark synthesis job.
func (h *JobHandlers) SubmitSuperdark(w http.ResponseWriter, r *http.Request) {
	var req model.SuperdarkRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	resp, err := h.Submissions.SubmitSuperdark(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteRaw(w, resp.HTTPStatus, resp.Raw)
}

// GetStatus handles polling requests for a job's {progress, status}.
func (h *JobHandlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	status, err := h.Status.Get(r.Context(), jobID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, status)
}

// GetResults handles requests for a job's full result payload, passed
// through from the worker unmodified.
func (h *JobHandlers) GetResults(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	resp, err := h.Results.Get(r.Context(), jobID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteRaw(w, resp.HTTPStatus, resp.Raw)
}

// Cancel forwards a cancel command and returns the worker's acknowledgement
// as-is, including for jobs already in a terminal state.
func (h *JobHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	ack, err := h.Cancellations.Cancel(r.Context(), jobID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteRaw(w, ack.HTTPStatus, ack.Raw)
}

// GetLatestResult resolves the most recent successful result for
// (project, user, frame type).
func (h *JobHandlers) GetLatestResult(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectId")
	if projectID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("project id is required")},
		)
		return
	}

	query := model.LatestResultQuery{
		ProjectID: projectID,
		UserID:    r.URL.Query().Get("user_id"),
		FrameType: model.FrameType(r.URL.Query().Get("frame_type")),
	}

	result, err := h.LatestResults.Latest(r.Context(), query)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// GetSuperdark resolves a superdark record by job identifier.
func (h *JobHandlers) GetSuperdark(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("jobId")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	result, err := h.LatestResults.Superdark(r.Context(), jobID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
