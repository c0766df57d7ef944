package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/deepskylab/calib-ui-api/internal/domain/model"
	apperrors "github.com/deepskylab/calib-ui-api/internal/errors"
	"github.com/deepskylab/calib-ui-api/internal/mocks"
)

func TestStatusService_Get_PassesThroughWorkerView(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWorker := mocks.NewMockWorkerClient(ctrl)
	svc := MustNewStatusService(StatusServiceOptions{Worker: mockWorker})

	mockWorker.EXPECT().
		Status(gomock.Any(), "wk-1").
		Return(&model.WorkerStatusResponse{Progress: 37.5, Status: model.JobStatusRunning}, nil)

	got, err := svc.Get(context.Background(), "wk-1")
	require.NoError(t, err)
	assert.Equal(t, &model.StatusResponse{Progress: 37.5, Status: model.JobStatusRunning}, got)
}

func TestStatusService_Get_ClampsProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWorker := mocks.NewMockWorkerClient(ctrl)
	svc := MustNewStatusService(StatusServiceOptions{Worker: mockWorker})

	cases := []struct {
		name     string
		reported float64
		want     float64
	}{
		{name: "negative clamps to zero", reported: -3, want: 0},
		{name: "overshoot clamps to hundred", reported: 104.2, want: 100},
		{name: "in range untouched", reported: 99.9, want: 99.9},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockWorker.EXPECT().
				Status(gomock.Any(), "wk-1").
				Return(&model.WorkerStatusResponse{Progress: tc.reported, Status: model.JobStatusRunning}, nil)

			got, err := svc.Get(context.Background(), "wk-1")
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got.Progress, 0.0001)
		})
	}
}

func TestStatusService_Get_UnknownJobIsNotFoundNotTransport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWorker := mocks.NewMockWorkerClient(ctrl)
	svc := MustNewStatusService(StatusServiceOptions{Worker: mockWorker})

	mockWorker.EXPECT().
		Status(gomock.Any(), "wk-missing").
		Return(nil, apperrors.NotFound(`no job found for "wk-missing"`))

	_, err := svc.Get(context.Background(), "wk-missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.False(t, apperrors.IsTransport(err))
}

func TestStatusService_Get_EmptyJobID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := MustNewStatusService(StatusServiceOptions{Worker: mocks.NewMockWorkerClient(ctrl)})

	_, err := svc.Get(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
