// Package mocks provides mock implementations for testing the calibration job system.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockJobRecordRepository(ctrl)
//	mockRepo.EXPECT().FindSuccessful(gomock.Any(), gomock.Any()).Return(records, nil)
package mocks

// Generate mock for JobRecordRepository interface from internal/core package.
// This creates MockJobRecordRepository with methods for all JobRecordRepository interface methods:
// FindSuccessful, GetByID
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_record_repository_mock.go github.com/deepskylab/calib-ui-api/internal/core JobRecordRepository

// Generate mock for WorkerClient interface from internal/core package.
// This creates MockWorkerClient with methods for all WorkerClient interface methods:
// Submit, Status, Results, Cancel
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=worker_client_mock.go github.com/deepskylab/calib-ui-api/internal/core WorkerClient

// Generate mock for CacheRepository interface from internal/core package.
// This creates MockCacheRepository with methods for all CacheRepository interface methods:
// Get, Set, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=cache_repository_mock.go github.com/deepskylab/calib-ui-api/internal/core CacheRepository
