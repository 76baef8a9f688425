package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	domainerrors "github.com/SdAm1n/DashAnalytics-sub000/internal/domain/errors"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// WriterOptions control chunking and concurrency for one ingest.
type WriterOptions struct {
	ChunkSize    int
	Workers      int
	ProfitMargin float64
}

// WriteResult carries the totals of one bulk write pass plus the coerced
// rows, which the materializer consumes afterwards.
type WriteResult struct {
	Rows        []Row
	Processed   int64
	Failed      int64
	LowReviews  int64
	HighReviews int64
}

// BulkWriter fans a frame out over a bounded worker pool of chunk writers.
// Chunks are independent and may complete in any order; writes are keyed by
// stable derived ids, so replaying a batch is safe.
type BulkWriter struct {
	stores  repository.StoreRegistry
	jobs    repository.UploadJobRepository
	options WriterOptions
	logger  *zap.Logger
}

// NewBulkWriter creates a new bulk writer.
func NewBulkWriter(stores repository.StoreRegistry, jobs repository.UploadJobRepository, options WriterOptions, logger *zap.Logger) *BulkWriter {
	if options.ChunkSize <= 0 {
		options.ChunkSize = 500
	}
	if options.Workers <= 0 {
		options.Workers = 4
	}
	return &BulkWriter{stores: stores, jobs: jobs, options: options, logger: logger}
}

// chunkDelta is one chunk's contribution to the job's running totals.
type chunkDelta struct {
	processed   int64
	failed      int64
	lowReviews  int64
	highReviews int64
}

// Run writes the frame to both stores and reports progress to the upload
// registry at least once per chunk. A chunk failure marks that chunk's rows
// as failed and the siblings continue; only the loss of both stores before
// any successful write fails the run.
func (w *BulkWriter) Run(ctx context.Context, frame *Frame, jobID string) (*WriteResult, error) {
	chunks := frame.Chunks(w.options.ChunkSize)
	rowsByChunk := make([][]Row, len(chunks))

	// Single progress sink: per-chunk deltas are accumulated here and the
	// running totals have exactly one writer, so processed_records never
	// decreases under any worker interleaving.
	deltas := make(chan chunkDelta, len(chunks))
	var sinkWG sync.WaitGroup
	var totals WriteResult
	sinkWG.Add(1)
	go func() {
		defer sinkWG.Done()
		for d := range deltas {
			totals.Processed += d.processed
			totals.Failed += d.failed
			totals.LowReviews += d.lowReviews
			totals.HighReviews += d.highReviews
			progress := repository.UploadProgress{
				Processed:   totals.Processed,
				Failed:      totals.Failed,
				LowReviews:  totals.LowReviews,
				HighReviews: totals.HighReviews,
			}
			if err := w.jobs.UpdateProgress(ctx, jobID, progress); err != nil {
				w.logger.Warn("failed to update job progress",
					zap.String("job_id", jobID),
					zap.Error(err))
			}
		}
	}()

	var health storeHealth

	eg := &errgroup.Group{}
	eg.SetLimit(w.options.Workers)
	for i := range chunks {
		chunk := &chunks[i]
		eg.Go(func() error {
			rows, failed := chunk.Rows()
			delta := chunkDelta{failed: int64(failed)}

			lowN, highN, err := w.writeChunk(ctx, rows, &health)
			if err != nil {
				// Both stores rejected the chunk: its rows count as failed.
				w.logger.Error("chunk write failed on both stores",
					zap.String("job_id", jobID),
					zap.Int("chunk", chunk.Index),
					zap.Error(err))
				delta.failed += int64(len(rows))
				rows = nil
			} else {
				delta.processed = int64(len(rows))
				delta.lowReviews = int64(lowN)
				delta.highReviews = int64(highN)
			}

			rowsByChunk[chunk.Index] = rows
			deltas <- delta
			return nil
		})
	}
	_ = eg.Wait()
	close(deltas)
	sinkWG.Wait()

	if frame.Len() > 0 && !health.anySuccess() {
		return nil, domainerrors.ErrStoreUnavailable
	}

	for _, rows := range rowsByChunk {
		totals.Rows = append(totals.Rows, rows...)
	}
	return &totals, nil
}

// storeHealth tracks whether each store accepted at least one write during
// the run.
type storeHealth struct {
	mu   sync.Mutex
	low  bool
	high bool
}

func (h *storeHealth) markSuccess(name repository.StoreName) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if name == repository.StoreLow {
		h.low = true
	} else {
		h.high = true
	}
}

func (h *storeHealth) anySuccess() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.low || h.high
}

// writeChunk applies one chunk's extracted records to the stores in a fixed
// collection order. The order only matters for readability of partial state;
// the stores enforce no referential integrity.
func (w *BulkWriter) writeChunk(ctx context.Context, rows []Row, health *storeHealth) (lowN, highN int, err error) {
	if len(rows) == 0 {
		return 0, 0, nil
	}

	type upsertOp struct {
		collection   string
		filterFields []string
		docs         []interface{}
	}
	ops := []upsertOp{
		{repository.CollectionCustomers, []string{"customer_id"}, toDocs(ExtractCustomers(rows))},
		{repository.CollectionProducts, []string{"product_id"}, toDocs(ExtractProducts(rows))},
		{repository.CollectionOrders, []string{"order_id"}, toDocs(ExtractOrders(rows))},
		{repository.CollectionSales, []string{"id"}, toDocs(ExtractSales(rows, w.options.ProfitMargin))},
	}

	failed := map[repository.StoreName]bool{}
	for _, store := range w.stores.Both() {
		for _, op := range ops {
			if len(op.docs) == 0 {
				continue
			}
			if opErr := w.withRetry(ctx, func() error {
				return store.BulkUpsert(ctx, op.collection, op.filterFields, op.docs)
			}); opErr != nil {
				w.logger.Error("bulk upsert failed",
					zap.String("store", string(store.Name())),
					zap.String("collection", op.collection),
					zap.Error(opErr))
				failed[store.Name()] = true
			} else {
				health.markSuccess(store.Name())
			}
		}
	}

	lowReviews, highReviews := ExtractReviews(rows)
	if len(lowReviews) > 0 && !failed[repository.StoreLow] {
		if opErr := w.withRetry(ctx, func() error {
			return w.stores.Store(repository.StoreLow).BulkInsert(ctx, repository.CollectionLowReviews, toDocs(lowReviews))
		}); opErr != nil {
			w.logger.Error("low review insert failed", zap.Error(opErr))
		} else {
			lowN = len(lowReviews)
			health.markSuccess(repository.StoreLow)
		}
	}
	if len(highReviews) > 0 && !failed[repository.StoreHigh] {
		if opErr := w.withRetry(ctx, func() error {
			return w.stores.Store(repository.StoreHigh).BulkInsert(ctx, repository.CollectionHighReviews, toDocs(highReviews))
		}); opErr != nil {
			w.logger.Error("high review insert failed", zap.Error(opErr))
		} else {
			highN = len(highReviews)
			health.markSuccess(repository.StoreHigh)
		}
	}

	// A single unhealthy store is healed later by the reconciler; the chunk
	// only fails when neither store took its operational writes.
	if failed[repository.StoreLow] && failed[repository.StoreHigh] {
		return 0, 0, domainerrors.ErrStoreUnavailable
	}
	return lowN, highN, nil
}

// withRetry retries a store operation once when the adapter classified the
// failure as transient.
func (w *BulkWriter) withRetry(ctx context.Context, op func() error) error {
	err := op()
	if err == nil || !domainerrors.IsTransient(err) {
		return err
	}
	if ctx.Err() != nil {
		return err
	}
	return op()
}

func toDocs[T any](items []T) []interface{} {
	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	return docs
}
