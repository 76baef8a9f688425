package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	domainerrors "github.com/SdAm1n/DashAnalytics-sub000/internal/domain/errors"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
)

// uploadJobRepository keeps the upload registry replicated across both
// stores. Writes go to both; a write is accepted if at least one store takes
// it, matching the availability rule for operational collections. Reads
// prefer the high store and fall back to the low one.
type uploadJobRepository struct {
	stores repository.StoreRegistry
	logger *zap.Logger
}

// NewUploadJobRepository creates a new upload registry over both stores.
func NewUploadJobRepository(stores repository.StoreRegistry, logger *zap.Logger) repository.UploadJobRepository {
	return &uploadJobRepository{stores: stores, logger: logger}
}

func (r *uploadJobRepository) Create(ctx context.Context, job *model.UploadJob) error {
	taken, err := r.fileNameTaken(ctx, job.FileName)
	if err != nil {
		return err
	}
	if taken {
		return domainerrors.NewDuplicateUploadError(job.FileName)
	}

	// The count above races with concurrent submits of the same file name;
	// the unique file_name index is the authoritative guard. A duplicate-key
	// rejection from either store means another job already owns the name,
	// so it is a conflict on the registry as a whole, never a tolerated
	// single-store failure.
	filter := map[string]interface{}{"_id": job.ID}
	var lastErr error
	accepted := false
	for _, store := range r.stores.Both() {
		if err := store.UpdateOneBy(ctx, repository.CollectionRawDataUploads, filter, job, true); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return domainerrors.NewDuplicateUploadError(job.FileName)
			}
			r.logger.Warn("job write rejected by store",
				zap.String("store", string(store.Name())),
				zap.Error(err))
			lastErr = err
			continue
		}
		accepted = true
	}
	if !accepted {
		return fmt.Errorf("failed to write job record: %w", lastErr)
	}
	return nil
}

func (r *uploadJobRepository) MarkProcessing(ctx context.Context, jobID string) error {
	now := time.Now().UTC()
	return r.update(ctx, jobID, map[string]interface{}{
		"status":     model.UploadStatusProcessing,
		"started_at": now,
	})
}

func (r *uploadJobRepository) UpdateProgress(ctx context.Context, jobID string, progress repository.UploadProgress) error {
	return r.update(ctx, jobID, progressFields(progress))
}

func (r *uploadJobRepository) Complete(ctx context.Context, jobID string, progress repository.UploadProgress) error {
	fields := progressFields(progress)
	fields["status"] = model.UploadStatusCompleted
	fields["completed_at"] = time.Now().UTC()
	return r.update(ctx, jobID, fields)
}

func (r *uploadJobRepository) Fail(ctx context.Context, jobID string, message string) error {
	return r.update(ctx, jobID, map[string]interface{}{
		"status":        model.UploadStatusFailed,
		"error_message": message,
		"completed_at":  time.Now().UTC(),
	})
}

func (r *uploadJobRepository) Get(ctx context.Context, jobID string) (*model.UploadJob, error) {
	var lastErr error
	for _, store := range r.readOrder() {
		var jobs []model.UploadJob
		err := store.Find(ctx, repository.CollectionRawDataUploads, map[string]interface{}{"_id": jobID}, nil, &jobs)
		if err != nil {
			lastErr = err
			continue
		}
		if len(jobs) > 0 {
			return &jobs[0], nil
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("failed to load job %s: %w", jobID, lastErr)
	}
	return nil, domainerrors.ErrJobNotFound
}

func (r *uploadJobRepository) List(ctx context.Context) ([]model.UploadJob, error) {
	var lastErr error
	for _, store := range r.readOrder() {
		var jobs []model.UploadJob
		if err := store.Find(ctx, repository.CollectionRawDataUploads, nil, nil, &jobs); err != nil {
			lastErr = err
			continue
		}
		return jobs, nil
	}
	return nil, fmt.Errorf("failed to list jobs: %w", lastErr)
}

func (r *uploadJobRepository) fileNameTaken(ctx context.Context, fileName string) (bool, error) {
	var lastErr error
	for _, store := range r.readOrder() {
		count, err := store.Count(ctx, repository.CollectionRawDataUploads, map[string]interface{}{"file_name": fileName})
		if err != nil {
			lastErr = err
			continue
		}
		return count > 0, nil
	}
	return false, fmt.Errorf("failed to check file name %q: %w", fileName, lastErr)
}

func (r *uploadJobRepository) update(ctx context.Context, jobID string, fields map[string]interface{}) error {
	return r.writeBoth(ctx, map[string]interface{}{"_id": jobID}, fields, false)
}

func (r *uploadJobRepository) writeBoth(ctx context.Context, filter map[string]interface{}, doc interface{}, upsert bool) error {
	var lastErr error
	accepted := false
	for _, store := range r.stores.Both() {
		if err := store.UpdateOneBy(ctx, repository.CollectionRawDataUploads, filter, doc, upsert); err != nil {
			r.logger.Warn("job write rejected by store",
				zap.String("store", string(store.Name())),
				zap.Error(err))
			lastErr = err
			continue
		}
		accepted = true
	}
	if !accepted {
		return fmt.Errorf("failed to write job record: %w", lastErr)
	}
	return nil
}

func (r *uploadJobRepository) readOrder() []repository.Store {
	return []repository.Store{
		r.stores.Store(repository.StoreHigh),
		r.stores.Store(repository.StoreLow),
	}
}

func progressFields(progress repository.UploadProgress) map[string]interface{} {
	return map[string]interface{}{
		"processed_records": progress.Processed,
		"failed_records":    progress.Failed,
		"low_reviews":       progress.LowReviews,
		"high_reviews":      progress.HighReviews,
	}
}
