package repository

import (
	"context"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
)

// UploadProgress is the running-total snapshot written after chunk
// completions. Totals are absolute values computed by the single progress
// sink, never per-worker deltas, so processed_records is monotonic.
type UploadProgress struct {
	Processed   int64
	Failed      int64
	LowReviews  int64
	HighReviews int64
}

// UploadJobRepository is the upload registry. Jobs are replicated to both
// stores through the store abstraction.
type UploadJobRepository interface {
	// Create writes the pending record. It returns DuplicateUploadError when
	// the file name was already ingested, before anything is written.
	Create(ctx context.Context, job *model.UploadJob) error

	MarkProcessing(ctx context.Context, jobID string) error
	UpdateProgress(ctx context.Context, jobID string, progress UploadProgress) error
	Complete(ctx context.Context, jobID string, progress UploadProgress) error
	Fail(ctx context.Context, jobID string, message string) error

	Get(ctx context.Context, jobID string) (*model.UploadJob, error)
	List(ctx context.Context) ([]model.UploadJob, error)
}
