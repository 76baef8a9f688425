package usecase_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainerrors "github.com/SdAm1n/DashAnalytics-sub000/internal/domain/errors"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/usecase"
)

// memJobRepo is a full in-memory upload registry.
type memJobRepo struct {
	mu     sync.Mutex
	jobs   map[string]*model.UploadJob
	byFile map[string]string
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[string]*model.UploadJob), byFile: make(map[string]string)}
}

func (r *memJobRepo) Create(_ context.Context, job *model.UploadJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byFile[job.FileName]; ok {
		return domainerrors.NewDuplicateUploadError(job.FileName)
	}
	copied := *job
	r.jobs[job.ID] = &copied
	r.byFile[job.FileName] = job.ID
	return nil
}

func (r *memJobRepo) mutate(jobID string, fn func(*model.UploadJob)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return domainerrors.ErrJobNotFound
	}
	fn(job)
	return nil
}

func (r *memJobRepo) MarkProcessing(_ context.Context, jobID string) error {
	return r.mutate(jobID, func(j *model.UploadJob) { j.Status = model.UploadStatusProcessing })
}

func applyProgress(j *model.UploadJob, p repository.UploadProgress) {
	j.ProcessedRecords = p.Processed
	j.FailedRecords = p.Failed
	j.LowReviews = p.LowReviews
	j.HighReviews = p.HighReviews
}

func (r *memJobRepo) UpdateProgress(_ context.Context, jobID string, p repository.UploadProgress) error {
	return r.mutate(jobID, func(j *model.UploadJob) { applyProgress(j, p) })
}

func (r *memJobRepo) Complete(_ context.Context, jobID string, p repository.UploadProgress) error {
	return r.mutate(jobID, func(j *model.UploadJob) {
		applyProgress(j, p)
		j.Status = model.UploadStatusCompleted
	})
}

func (r *memJobRepo) Fail(_ context.Context, jobID string, message string) error {
	return r.mutate(jobID, func(j *model.UploadJob) {
		j.Status = model.UploadStatusFailed
		j.ErrorMessage = message
	})
}

func (r *memJobRepo) Get(_ context.Context, jobID string) (*model.UploadJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, domainerrors.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *memJobRepo) List(_ context.Context) ([]model.UploadJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.UploadJob, 0, len(r.jobs))
	for _, job := range r.jobs {
		out = append(out, *job)
	}
	return out, nil
}

func newIngestService(stores *fakeRegistry, jobs repository.UploadJobRepository) *usecase.IngestService {
	logger := zap.NewNop()
	writer := usecase.NewBulkWriter(stores, jobs, usecase.WriterOptions{
		ChunkSize:    5,
		Workers:      2,
		ProfitMargin: 0.3,
	}, logger)
	materializer := usecase.NewMaterializer(stores, 0.3, logger)
	reconciler := usecase.NewReconciler(newFakeTrendRepo(), logger)
	return usecase.NewIngestService(jobs, writer, materializer, reconciler, logger)
}

func ingestCSV(rows ...string) []byte {
	return []byte(strings.Join(append([]string{csvHeader}, rows...), "\n"))
}

func TestIngestServiceSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("full pipeline completes the job and materializes analytics", func(t *testing.T) {
		stores := newFakeRegistry()
		jobs := newMemJobRepo()
		service := newIngestService(stores, jobs)

		jobID, err := service.Submit(ctx, "sales.csv", ingestCSV(
			"1,Male,30,Dhaka,10,Widget,5,Gadgets,10.00,2024-03-15,2,Card,4.5,nice",
			"2,Female,25,Sylhet,11,Gizmo,5,Gadgets,20.00,2024-03-16,1,Card,2.0,bad",
		))
		require.NoError(t, err)

		job, err := service.Status(ctx, jobID)
		require.NoError(t, err)
		assert.Equal(t, model.UploadStatusCompleted, job.Status)
		assert.Equal(t, int64(2), job.TotalRecords)
		assert.Equal(t, int64(2), job.ProcessedRecords)
		assert.Equal(t, int64(0), job.FailedRecords)
		assert.Equal(t, int64(1), job.LowReviews)
		assert.Equal(t, int64(1), job.HighReviews)

		// materialized families reach both stores
		for _, store := range []*fakeStore{stores.low, stores.high} {
			assert.NotZero(t, store.count(repository.CollectionSalesTrends))
			assert.NotZero(t, store.count(repository.CollectionProductPerformance))
			assert.NotZero(t, store.count(repository.CollectionCustomerBehavior))
			assert.NotZero(t, store.count(repository.CollectionPredictions))
		}
	})

	t.Run("duplicate file name is rejected before any write", func(t *testing.T) {
		stores := newFakeRegistry()
		jobs := newMemJobRepo()
		service := newIngestService(stores, jobs)

		payload := ingestCSV("1,Male,30,Dhaka,10,Widget,5,Gadgets,10.00,2024-03-15,2,Card,,")
		_, err := service.Submit(ctx, "batch.csv", payload)
		require.NoError(t, err)

		salesBefore := stores.low.count(repository.CollectionSales)

		_, err = service.Submit(ctx, "batch.csv", payload)
		var dup *domainerrors.DuplicateUploadError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "batch.csv", dup.FileName)
		assert.Equal(t, salesBefore, stores.low.count(repository.CollectionSales))

		all, err := service.ListJobs(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("a bad header is an input error and leaves no job", func(t *testing.T) {
		stores := newFakeRegistry()
		jobs := newMemJobRepo()
		service := newIngestService(stores, jobs)

		_, err := service.Submit(ctx, "broken.csv", []byte("customer_id,quantity\n1,2"))
		var input *domainerrors.InputError
		require.ErrorAs(t, err, &input)

		all, err := service.ListJobs(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("losing both stores fails the job, not the request", func(t *testing.T) {
		stores := newFakeRegistry()
		stores.low.failAll = true
		stores.high.failAll = true
		jobs := newMemJobRepo()
		service := newIngestService(stores, jobs)

		jobID, err := service.Submit(ctx, "doomed.csv", ingestCSV(
			"1,Male,30,Dhaka,10,Widget,5,Gadgets,10.00,2024-03-15,2,Card,,"))
		require.NoError(t, err)

		job, err := service.Status(ctx, jobID)
		require.NoError(t, err)
		assert.Equal(t, model.UploadStatusFailed, job.Status)
		assert.NotEmpty(t, job.ErrorMessage)
	})

	t.Run("empty csv body completes with zero records", func(t *testing.T) {
		stores := newFakeRegistry()
		jobs := newMemJobRepo()
		service := newIngestService(stores, jobs)

		jobID, err := service.Submit(ctx, "empty.csv", ingestCSV())
		require.NoError(t, err)

		job, err := service.Status(ctx, jobID)
		require.NoError(t, err)
		assert.Equal(t, model.UploadStatusCompleted, job.Status)
		assert.Zero(t, job.TotalRecords)
		assert.Zero(t, job.ProcessedRecords)
	})

	t.Run("zero-byte upload completes with zero records", func(t *testing.T) {
		stores := newFakeRegistry()
		jobs := newMemJobRepo()
		service := newIngestService(stores, jobs)

		jobID, err := service.Submit(ctx, "blank.csv", nil)
		require.NoError(t, err)

		job, err := service.Status(ctx, jobID)
		require.NoError(t, err)
		assert.Equal(t, model.UploadStatusCompleted, job.Status)
		assert.Zero(t, job.TotalRecords)
	})
}
