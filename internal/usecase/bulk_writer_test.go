package usecase_test

import (
	"context"
	"errors"
	"fmt"
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

// fakeStore is an in-memory Store that records writes per collection and can
// be told to fail, permanently or transiently.
type fakeStore struct {
	name repository.StoreName

	mu         sync.Mutex
	docs       map[string][]interface{}
	failAll    bool
	transients int
}

func newFakeStore(name repository.StoreName) *fakeStore {
	return &fakeStore{name: name, docs: make(map[string][]interface{})}
}

func (s *fakeStore) Name() repository.StoreName { return s.name }

func (s *fakeStore) write(collection string, docs []interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transients > 0 {
		s.transients--
		return &domainerrors.TransientStoreError{Err: errors.New("connection reset")}
	}
	if s.failAll {
		return errors.New("store down")
	}
	s.docs[collection] = append(s.docs[collection], docs...)
	return nil
}

func (s *fakeStore) BulkUpsert(_ context.Context, collection string, _ []string, docs []interface{}) error {
	return s.write(collection, docs)
}

func (s *fakeStore) BulkInsert(_ context.Context, collection string, docs []interface{}) error {
	return s.write(collection, docs)
}

func (s *fakeStore) UpdateOneBy(_ context.Context, collection string, _ map[string]interface{}, doc interface{}, _ bool) error {
	return s.write(collection, []interface{}{doc})
}

func (s *fakeStore) Count(_ context.Context, collection string, _ map[string]interface{}) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.docs[collection])), nil
}

func (s *fakeStore) Find(context.Context, string, map[string]interface{}, []string, interface{}) error {
	return nil
}

func (s *fakeStore) count(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs[collection])
}

type fakeRegistry struct {
	low  *fakeStore
	high *fakeStore
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{low: newFakeStore(repository.StoreLow), high: newFakeStore(repository.StoreHigh)}
}

func (r *fakeRegistry) Store(name repository.StoreName) repository.Store {
	if name == repository.StoreHigh {
		return r.high
	}
	return r.low
}

func (r *fakeRegistry) Both() []repository.Store {
	return []repository.Store{r.low, r.high}
}

func (r *fakeRegistry) Close(context.Context) error { return nil }

// fakeJobRepo records every progress snapshot in arrival order.
type fakeJobRepo struct {
	mu        sync.Mutex
	snapshots []repository.UploadProgress
}

func (r *fakeJobRepo) Create(context.Context, *model.UploadJob) error     { return nil }
func (r *fakeJobRepo) MarkProcessing(context.Context, string) error       { return nil }
func (r *fakeJobRepo) Complete(context.Context, string, repository.UploadProgress) error {
	return nil
}
func (r *fakeJobRepo) Fail(context.Context, string, string) error { return nil }
func (r *fakeJobRepo) Get(context.Context, string) (*model.UploadJob, error) {
	return nil, domainerrors.ErrJobNotFound
}
func (r *fakeJobRepo) List(context.Context) ([]model.UploadJob, error) { return nil, nil }

func (r *fakeJobRepo) UpdateProgress(_ context.Context, _ string, progress repository.UploadProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, progress)
	return nil
}

func (r *fakeJobRepo) progressHistory() []repository.UploadProgress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]repository.UploadProgress(nil), r.snapshots...)
}

func ingestFrame(t *testing.T, rowCount int, review func(i int) string) *usecase.Frame {
	t.Helper()
	lines := []string{csvHeader}
	for i := 0; i < rowCount; i++ {
		score := ""
		if review != nil {
			score = review(i)
		}
		lines = append(lines, fmt.Sprintf(
			"%d,Male,30,Dhaka,%d,Widget,5,Gadgets,10.00,2024-03-%02d,1,Card,%s,",
			i+1, 100+i, i%28+1, score))
	}
	frame, err := usecase.ParseFrame(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return frame
}

func newWriter(stores repository.StoreRegistry, jobs repository.UploadJobRepository, chunkSize int) *usecase.BulkWriter {
	return usecase.NewBulkWriter(stores, jobs, usecase.WriterOptions{
		ChunkSize:    chunkSize,
		Workers:      2,
		ProfitMargin: 0.3,
	}, zap.NewNop())
}

func TestBulkWriterRun(t *testing.T) {
	ctx := context.Background()

	t.Run("replicates operational collections and routes reviews", func(t *testing.T) {
		stores := newFakeRegistry()
		jobs := &fakeJobRepo{}
		// alternate review scores: even rows 2.0 (low), odd rows 5.0 (high)
		frame := ingestFrame(t, 10, func(i int) string {
			if i%2 == 0 {
				return "2.0"
			}
			return "5.0"
		})

		result, err := newWriter(stores, jobs, 4).Run(ctx, frame, "job-1")
		require.NoError(t, err)

		assert.Equal(t, int64(10), result.Processed)
		assert.Equal(t, int64(0), result.Failed)
		assert.Equal(t, int64(5), result.LowReviews)
		assert.Equal(t, int64(5), result.HighReviews)
		assert.Len(t, result.Rows, 10)

		for _, collection := range []string{
			repository.CollectionCustomers,
			repository.CollectionProducts,
			repository.CollectionOrders,
			repository.CollectionSales,
		} {
			assert.Equal(t, 10, stores.low.count(collection), collection)
			assert.Equal(t, 10, stores.high.count(collection), collection)
		}

		// reviews land in exactly one store
		assert.Equal(t, 5, stores.low.count(repository.CollectionLowReviews))
		assert.Equal(t, 0, stores.low.count(repository.CollectionHighReviews))
		assert.Equal(t, 5, stores.high.count(repository.CollectionHighReviews))
		assert.Equal(t, 0, stores.high.count(repository.CollectionLowReviews))
	})

	t.Run("progress totals are monotonic", func(t *testing.T) {
		stores := newFakeRegistry()
		jobs := &fakeJobRepo{}
		frame := ingestFrame(t, 20, nil)

		_, err := newWriter(stores, jobs, 3).Run(ctx, frame, "job-2")
		require.NoError(t, err)

		history := jobs.progressHistory()
		require.NotEmpty(t, history)
		prev := int64(-1)
		for _, snapshot := range history {
			assert.GreaterOrEqual(t, snapshot.Processed, prev)
			prev = snapshot.Processed
		}
		assert.Equal(t, int64(20), history[len(history)-1].Processed)
	})

	t.Run("one dead store does not fail the run", func(t *testing.T) {
		stores := newFakeRegistry()
		stores.low.failAll = true
		jobs := &fakeJobRepo{}
		frame := ingestFrame(t, 6, func(int) string { return "5.0" })

		result, err := newWriter(stores, jobs, 3).Run(ctx, frame, "job-3")
		require.NoError(t, err)

		assert.Equal(t, int64(6), result.Processed)
		assert.Equal(t, int64(6), result.HighReviews)
		assert.Equal(t, 6, stores.high.count(repository.CollectionSales))
		assert.Equal(t, 0, stores.low.count(repository.CollectionSales))
	})

	t.Run("both stores dead fails the run", func(t *testing.T) {
		stores := newFakeRegistry()
		stores.low.failAll = true
		stores.high.failAll = true
		jobs := &fakeJobRepo{}
		frame := ingestFrame(t, 4, nil)

		_, err := newWriter(stores, jobs, 2).Run(ctx, frame, "job-4")
		assert.ErrorIs(t, err, domainerrors.ErrStoreUnavailable)
	})

	t.Run("transient failures are retried", func(t *testing.T) {
		stores := newFakeRegistry()
		stores.low.transients = 1
		jobs := &fakeJobRepo{}
		frame := ingestFrame(t, 2, nil)

		result, err := newWriter(stores, jobs, 10).Run(ctx, frame, "job-5")
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Processed)
		// the failed first attempt was replayed
		assert.Equal(t, 2, stores.low.count(repository.CollectionCustomers))
	})

	t.Run("bad rows count as failed without stopping the chunk", func(t *testing.T) {
		stores := newFakeRegistry()
		jobs := &fakeJobRepo{}
		lines := []string{csvHeader,
			"1,Male,30,Dhaka,10,Widget,5,Gadgets,10.00,2024-03-15,1,Card,,",
			"bad,Male,30,Dhaka,11,Widget,5,Gadgets,10.00,2024-03-15,1,Card,,",
			"3,Male,30,Dhaka,12,Widget,5,Gadgets,10.00,2024-03-15,1,Card,,",
		}
		frame, err := usecase.ParseFrame(strings.NewReader(strings.Join(lines, "\n")))
		require.NoError(t, err)

		result, err := newWriter(stores, jobs, 10).Run(ctx, frame, "job-6")
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Processed)
		assert.Equal(t, int64(1), result.Failed)
	})

	t.Run("empty frame succeeds with zero totals", func(t *testing.T) {
		stores := newFakeRegistry()
		jobs := &fakeJobRepo{}
		frame := ingestFrame(t, 0, nil)

		result, err := newWriter(stores, jobs, 10).Run(ctx, frame, "job-7")
		require.NoError(t, err)
		assert.Zero(t, result.Processed)
		assert.Empty(t, result.Rows)
	})
}
