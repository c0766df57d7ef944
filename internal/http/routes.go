package httpx

import (
	"log/slog"
	"net/http"

	"github.com/deepskylab/calib-ui-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Submissions   *service.SubmissionService
	Status        *service.StatusService
	Results       *service.ResultsService
	LatestResults *service.LatestResultService
	Cancellations *service.CancellationService
	Logger        *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	jobHandlers := &JobHandlers{
		Submissions:   services.Submissions,
		Status:        services.Status,
		Results:       services.Results,
		LatestResults: services.LatestResults,
		Cancellations: services.Cancellations,
	}

	registerJobRoutes(mux, jobHandlers)
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers) {
	mux.Handle("POST /api/jobs", http.HandlerFunc(h.SubmitCalibration))
	mux.Handle("GET /api/jobs/{id}/status", http.HandlerFunc(h.GetStatus))
	mux.Handle("GET /api/jobs/{id}/results", http.HandlerFunc(h.GetResults))
	mux.Handle("POST /api/jobs/{id}/cancel", http.HandlerFunc(h.Cancel))
	mux.Handle("GET /api/projects/{projectId}/latest-result", http.HandlerFunc(h.GetLatestResult))
	mux.Handle("POST /api/superdarks", http.HandlerFunc(h.SubmitSuperdark))
	mux.Handle("GET /api/superdarks/{jobId}", http.HandlerFunc(h.GetSuperdark))
}
