package worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepskylab/calib-ui-api/internal/domain/model"
	apperrors "github.com/deepskylab/calib-ui-api/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func submitPayload() *model.WorkerSubmitRequest {
	return &model.WorkerSubmitRequest{
		JobType:    model.JobTypeCalibration,
		InputFiles: []string{"a.fits", "b.fits"},
		ProjectID:  "proj-1",
		UserID:     "user-1",
	}
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "not a url"})
	assert.Error(t, err)

	client, err := NewClient(Config{BaseURL: "http://worker:9000/"})
	require.NoError(t, err)
	assert.Equal(t, "http://worker:9000", client.baseURL)
}

func TestClient_Submit_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/jobs/submit", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body model.WorkerSubmitRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, model.JobTypeCalibration, body.JobType)
		assert.Equal(t, []string{"a.fits", "b.fits"}, body.InputFiles)

		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"jobId": "wk-1", "status": "pending", "queue_position": 3}`))
	})

	resp, err := client.Submit(context.Background(), submitPayload())
	require.NoError(t, err)
	assert.Equal(t, "wk-1", resp.JobID)
	assert.Equal(t, model.JobStatusPending, resp.Status)
	assert.Equal(t, http.StatusAccepted, resp.HTTPStatus)
	// Extra worker fields survive in the raw body for pass-through.
	assert.Contains(t, string(resp.Raw), "queue_position")
}

func TestClient_Submit_WorkerRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error": "unknown master frame reference"}`))
	})

	_, err := client.Submit(context.Background(), submitPayload())
	require.Error(t, err)
	assert.True(t, apperrors.IsWorkerRejected(err))
	assert.Equal(t, http.StatusUnprocessableEntity, apperrors.GetHTTPStatus(err))
	assert.Contains(t, err.Error(), "unknown master frame reference")
}

func TestClient_Submit_ServerErrorIsTransport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Submit(context.Background(), submitPayload())
	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
	assert.False(t, apperrors.IsWorkerRejected(err))
}

func TestClient_Submit_MissingJobIDIsTransport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "pending"}`))
	})

	_, err := client.Submit(context.Background(), submitPayload())
	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
}

func TestClient_Submit_UnreachableWorkerIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing is listening anymore

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Submit(context.Background(), submitPayload())
	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
}

func TestClient_Status_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/status", r.URL.Path)
		assert.Equal(t, "wk-1", r.URL.Query().Get("job_id"))
		_, _ = w.Write([]byte(`{"progress": 42.5, "status": "running"}`))
	})

	resp, err := client.Status(context.Background(), "wk-1")
	require.NoError(t, err)
	assert.InDelta(t, 42.5, resp.Progress, 0.0001)
	assert.Equal(t, model.JobStatusRunning, resp.Status)
}

func TestClient_Status_NotFoundIsJobNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Status(context.Background(), "wk-gone")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.False(t, apperrors.IsTransport(err))
}

func TestClient_Status_ServerErrorIsTransport(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Status(context.Background(), "wk-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
	assert.Equal(t, http.StatusInternalServerError, apperrors.GetHTTPStatus(err))
}

func TestClient_Results_SuccessVerbatim(t *testing.T) {
	raw := `{"outputFiles": ["calibrated/a.fits"], "statistics": {"rejectedFrames": 2}}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/results", r.URL.Path)
		_, _ = w.Write([]byte(raw))
	})

	resp, err := client.Results(context.Background(), "wk-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.HTTPStatus)
	assert.JSONEq(t, raw, string(resp.Raw))
}

func TestClient_Results_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Results(context.Background(), "wk-gone")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestClient_Cancel_AckAnyStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "accepted", status: http.StatusOK, body: `{"jobId": "wk-1", "status": "cancelled"}`},
		{name: "already terminal", status: http.StatusConflict, body: `{"error": "job already finished"}`},
		{name: "unknown job", status: http.StatusNotFound, body: `{"error": "no such job"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/jobs/cancel", r.URL.Path)

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "wk-1", body["jobId"])

				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			ack, err := client.Cancel(context.Background(), "wk-1")
			require.NoError(t, err)
			assert.Equal(t, tc.status, ack.HTTPStatus)
			assert.JSONEq(t, tc.body, string(ack.Raw))
		})
	}
}

func TestClient_Cancel_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Cancel(context.Background(), "wk-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
}

func TestWorkerMessage(t *testing.T) {
	assert.Equal(t, "bad frames", workerMessage([]byte(`{"error": "bad frames"}`), "submit"))
	assert.Equal(t, "queue full", workerMessage([]byte(`{"message": "queue full"}`), "submit"))
	assert.Equal(t, "plain text", workerMessage([]byte("plain text"), "submit"))
	assert.Equal(t, "worker rejected submit request", workerMessage(nil, "submit"))
}
