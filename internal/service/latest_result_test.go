package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/deepskylab/calib-ui-api/internal/core"
	"github.com/deepskylab/calib-ui-api/internal/data"
	"github.com/deepskylab/calib-ui-api/internal/domain/model"
	apperrors "github.com/deepskylab/calib-ui-api/internal/errors"
	"github.com/deepskylab/calib-ui-api/internal/mocks"
	"github.com/deepskylab/calib-ui-api/internal/testutil"
)

func newLatestResultService(t *testing.T, repo core.JobRecordRepository, cache core.CacheRepository) *LatestResultService {
	t.Helper()
	return MustNewLatestResultService(LatestResultServiceOptions{
		Repo:  repo,
		Cache: cache,
	})
}

func lightQuery(projectID, userID string) model.LatestResultQuery {
	return model.LatestResultQuery{
		ProjectID: projectID,
		UserID:    userID,
		FrameType: model.FrameTypeLight,
	}
}

func TestLatestResultService_Latest_SingleMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRecordRepository(ctrl)
	svc := newLatestResultService(t, mockRepo, nil)

	rec := testutil.NewJobRecord("wk-1").
		WithResultKeys("proj-1", "user-1", model.FrameTypeLight).
		Build()

	mockRepo.EXPECT().
		FindSuccessful(gomock.Any(), core.FindSuccessfulParams{JobType: model.JobTypeCalibration}).
		Return([]model.JobRecord{rec}, nil)

	got, err := svc.Latest(context.Background(), lightQuery("proj-1", "user-1"))
	require.NoError(t, err)
	assert.Equal(t, "wk-1", got.JobID)
	assert.Equal(t, model.JobStatusSuccess, got.Status)
}

func TestLatestResultService_Latest_NewestMatchWins(t *testing.T) {
	// The store returns candidates newest-first; the first match must win
	// even when older records also match.
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRecordRepository(ctrl)
	svc := newLatestResultService(t, mockRepo, nil)

	now := time.Now().UTC()
	newest := testutil.NewJobRecord("wk-3").
		WithResultKeys("proj-1", "user-1", model.FrameTypeLight).
		WithCreatedAt(now).
		Build()
	middle := testutil.NewJobRecord("wk-2").
		WithResultKeys("proj-1", "user-1", model.FrameTypeLight).
		WithCreatedAt(now.Add(-time.Hour)).
		Build()
	oldest := testutil.NewJobRecord("wk-1").
		WithResultKeys("proj-1", "user-1", model.FrameTypeLight).
		WithCreatedAt(now.Add(-2 * time.Hour)).
		Build()

	mockRepo.EXPECT().
		FindSuccessful(gomock.Any(), gomock.Any()).
		Return([]model.JobRecord{newest, middle, oldest}, nil)

	got, err := svc.Latest(context.Background(), lightQuery("proj-1", "user-1"))
	require.NoError(t, err)
	assert.Equal(t, "wk-3", got.JobID)
}

func TestLatestResultService_Latest_LooseKeyMatching(t *testing.T) {
	// Result payloads from different worker versions use different key
	// spellings and types; matching tolerates both.
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRecordRepository(ctrl)
	svc := newLatestResultService(t, mockRepo, nil)

	rec := testutil.NewJobRecord("wk-snake").
		WithResult(`{"project_id": 42, "user_id": "user-1", "frame_type": "light"}`).
		Build()

	mockRepo.EXPECT().
		FindSuccessful(gomock.Any(), gomock.Any()).
		Return([]model.JobRecord{rec}, nil)

	got, err := svc.Latest(context.Background(), lightQuery("42", "user-1"))
	require.NoError(t, err)
	assert.Equal(t, "wk-snake", got.JobID)
}

func TestLatestResultService_Latest_UserFilterOnlyWhenGiven(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRecordRepository(ctrl)
	svc := newLatestResultService(t, mockRepo, nil)

	rec := testutil.NewJobRecord("wk-1").
		WithResultKeys("proj-1", "someone-else", model.FrameTypeLight).
		Build()

	mockRepo.EXPECT().
		FindSuccessful(gomock.Any(), gomock.Any()).
		Return([]model.JobRecord{rec}, nil).
		Times(2)

	// Without a user id the record matches on project and frame type alone.
	got, err := svc.Latest(context.Background(), lightQuery("proj-1", ""))
	require.NoError(t, err)
	assert.Equal(t, "wk-1", got.JobID)

	// With a user id the mismatch excludes it.
	_, err = svc.Latest(context.Background(), lightQuery("proj-1", "user-1"))
	require.Error(t, err)
	assert.True(t, apperrors.IsNoMatch(err))
}

func TestLatestResultService_Latest_NoMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRecordRepository(ctrl)
	svc := newLatestResultService(t, mockRepo, nil)

	mockRepo.EXPECT().
		FindSuccessful(gomock.Any(), gomock.Any()).
		Return(nil, nil)

	_, err := svc.Latest(context.Background(), lightQuery("proj-1", "user-1"))
	require.Error(t, err)
	assert.True(t, apperrors.IsNoMatch(err))
	assert.False(t, apperrors.IsNotFound(err))
}

func TestLatestResultService_Latest_SkipsUnreadablePayloads(t *testing.T) {
	// A record with a malformed payload must not hide an older match.
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRecordRepository(ctrl)
	svc := newLatestResultService(t, mockRepo, nil)

	broken := testutil.NewJobRecord("wk-broken").
		WithResult(`{"projectId": "proj-1", truncated`).
		Build()
	good := testutil.NewJobRecord("wk-good").
		WithResultKeys("proj-1", "user-1", model.FrameTypeLight).
		Build()

	mockRepo.EXPECT().
		FindSuccessful(gomock.Any(), gomock.Any()).
		Return([]model.JobRecord{broken, good}, nil)

	got, err := svc.Latest(context.Background(), lightQuery("proj-1", "user-1"))
	require.NoError(t, err)
	assert.Equal(t, "wk-good", got.JobID)
}

func TestLatestResultService_Latest_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newLatestResultService(t, mocks.NewMockJobRecordRepository(ctrl), nil)

	_, err := svc.Latest(context.Background(), model.LatestResultQuery{FrameType: model.FrameTypeLight})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Latest(context.Background(), model.LatestResultQuery{ProjectID: "proj-1", FrameType: "ultraviolet"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestLatestResultService_Latest_CacheHitSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRecordRepository(ctrl)
	mockCache := mocks.NewMockCacheRepository(ctrl)
	svc := newLatestResultService(t, mockRepo, mockCache)

	cached, err := json.Marshal(&model.LatestResultResponse{
		JobID:  "wk-cached",
		Status: model.JobStatusSuccess,
	})
	require.NoError(t, err)

	mockCache.EXPECT().
		Get(gomock.Any(), "latest_result:proj-1:user-1:light").
		Return(cached, nil)

	got, err := svc.Latest(context.Background(), lightQuery("proj-1", "user-1"))
	require.NoError(t, err)
	assert.Equal(t, "wk-cached", got.JobID)
}

func TestLatestResultService_Latest_CacheMissPopulatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRecordRepository(ctrl)
	mockCache := mocks.NewMockCacheRepository(ctrl)
	svc := newLatestResultService(t, mockRepo, mockCache)

	rec := testutil.NewJobRecord("wk-1").
		WithResultKeys("proj-1", "user-1", model.FrameTypeLight).
		Build()

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	mockRepo.EXPECT().FindSuccessful(gomock.Any(), gomock.Any()).Return([]model.JobRecord{rec}, nil)
	mockCache.EXPECT().
		Set(gomock.Any(), "latest_result:proj-1:user-1:light", gomock.Any(), defaultLatestResultTTL).
		Return(nil)

	got, err := svc.Latest(context.Background(), lightQuery("proj-1", "user-1"))
	require.NoError(t, err)
	assert.Equal(t, "wk-1", got.JobID)
}

func TestLatestResultService_InvalidateProject_FansOutOverFrameTypes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := mocks.NewMockCacheRepository(ctrl)
	svc := newLatestResultService(t, mocks.NewMockJobRecordRepository(ctrl), mockCache)

	// Both the user-scoped and the anonymous variant of every frame-type key
	// are dropped; anonymous lookups cache under the "-" segment.
	for _, ft := range model.FrameTypes() {
		mockCache.EXPECT().
			Delete(gomock.Any(), "latest_result:proj-1:user-1:"+string(ft)).
			Return(true, nil)
		mockCache.EXPECT().
			Delete(gomock.Any(), "latest_result:proj-1:-:"+string(ft)).
			Return(true, nil)
	}

	svc.InvalidateProject(context.Background(), "proj-1", "user-1")
}

func TestLatestResultService_InvalidateProject_AnonymousOnlyOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := mocks.NewMockCacheRepository(ctrl)
	svc := newLatestResultService(t, mocks.NewMockJobRecordRepository(ctrl), mockCache)

	for _, ft := range model.FrameTypes() {
		mockCache.EXPECT().
			Delete(gomock.Any(), "latest_result:proj-1:-:"+string(ft)).
			Return(false, nil)
	}

	svc.InvalidateProject(context.Background(), "proj-1", "")
}

func TestLatestResultService_Superdark_FoundByIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRecordRepository(ctrl)
	svc := newLatestResultService(t, mockRepo, nil)

	rec := testutil.NewJobRecord("wk-sd-1").
		WithType(model.JobTypeSuperdarkCreation).
		WithResult(`{"superdarkFile": "masters/superdark.fits"}`).
		Build()

	mockRepo.EXPECT().
		GetByID(gomock.Any(), "wk-sd-1", model.JobTypeSuperdarkCreation).
		Return(&rec, nil)

	got, err := svc.Superdark(context.Background(), "wk-sd-1")
	require.NoError(t, err)
	assert.Equal(t, "wk-sd-1", got.JobID)
}

func TestLatestResultService_Superdark_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockJobRecordRepository(ctrl)
	svc := newLatestResultService(t, mockRepo, nil)

	mockRepo.EXPECT().
		GetByID(gomock.Any(), "wk-missing", model.JobTypeSuperdarkCreation).
		Return(nil, data.ErrJobRecordNotFound)

	_, err := svc.Superdark(context.Background(), "wk-missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
