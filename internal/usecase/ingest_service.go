package usecase

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
)

// IngestService is the ingest control surface: submit, status, list. There is
// no cancellation; a stuck job is failed out-of-band and re-submitting the
// same batch is safe because every operational write is keyed by a stable
// derived id.
type IngestService struct {
	jobs         repository.UploadJobRepository
	writer       *BulkWriter
	materializer *Materializer
	reconciler   *Reconciler
	logger       *zap.Logger
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	jobs repository.UploadJobRepository,
	writer *BulkWriter,
	materializer *Materializer,
	reconciler *Reconciler,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		jobs:         jobs,
		writer:       writer,
		materializer: materializer,
		reconciler:   reconciler,
		logger:       logger,
	}
}

// Submit validates and ingests one CSV upload. Input errors (bad header,
// duplicate file name) are returned directly and leave no job record; once
// the pending record exists, every later failure surfaces only through the
// job state.
func (s *IngestService) Submit(ctx context.Context, fileName string, data []byte) (string, error) {
	frame, err := ParseFrame(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	job := model.NewUploadJob(uuid.NewString(), fileName, int64(frame.Len()))
	if err := s.jobs.Create(ctx, job); err != nil {
		return "", err
	}

	s.logger.Info("upload accepted",
		zap.String("job_id", job.ID),
		zap.String("file_name", fileName),
		zap.Int("rows", frame.Len()))

	if err := s.jobs.MarkProcessing(ctx, job.ID); err != nil {
		return job.ID, s.fail(ctx, job.ID, fmt.Errorf("failed to mark job processing: %w", err))
	}

	result, err := s.writer.Run(ctx, frame, job.ID)
	if err != nil {
		return job.ID, s.fail(ctx, job.ID, err)
	}

	if err := s.materializer.Materialize(ctx, result.Rows); err != nil {
		return job.ID, s.fail(ctx, job.ID, err)
	}

	if _, err := s.reconciler.Reconcile(ctx); err != nil {
		// The sweep is re-runnable at any time; a failed pass leaves the
		// stores briefly divergent but does not abandon the batch.
		s.logger.Error("trend reconciliation failed", zap.String("job_id", job.ID), zap.Error(err))
	}

	progress := repository.UploadProgress{
		Processed:   result.Processed,
		Failed:      result.Failed,
		LowReviews:  result.LowReviews,
		HighReviews: result.HighReviews,
	}
	if err := s.jobs.Complete(ctx, job.ID, progress); err != nil {
		return job.ID, s.fail(ctx, job.ID, fmt.Errorf("failed to complete job: %w", err))
	}

	s.logger.Info("upload completed",
		zap.String("job_id", job.ID),
		zap.Int64("processed", result.Processed),
		zap.Int64("failed", result.Failed))

	return job.ID, nil
}

// fail records the fatal error on the job. The job record is the user-visible
// failure channel, so Submit itself returns nil once the job exists.
func (s *IngestService) fail(ctx context.Context, jobID string, cause error) error {
	s.logger.Error("upload failed", zap.String("job_id", jobID), zap.Error(cause))
	if err := s.jobs.Fail(ctx, jobID, cause.Error()); err != nil {
		s.logger.Error("failed to record job failure", zap.String("job_id", jobID), zap.Error(err))
	}
	return nil
}

// Status returns one job's lifecycle record.
func (s *IngestService) Status(ctx context.Context, jobID string) (*model.UploadJob, error) {
	return s.jobs.Get(ctx, jobID)
}

// ListJobs returns summaries of all upload jobs.
func (s *IngestService) ListJobs(ctx context.Context) ([]model.UploadJob, error) {
	return s.jobs.List(ctx)
}
