package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	handlers "github.com/SdAm1n/DashAnalytics-sub000/internal/adapter/handler/http"
	domainerrors "github.com/SdAm1n/DashAnalytics-sub000/internal/domain/errors"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/usecase"
)

// memStore is an in-memory Store sufficient for driving the ingest pipeline
// through the handler.
type memStore struct {
	name repository.StoreName
	mu   sync.Mutex
	docs map[string][]interface{}
}

func (s *memStore) Name() repository.StoreName { return s.name }

func (s *memStore) append(collection string, docs []interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		s.docs = make(map[string][]interface{})
	}
	s.docs[collection] = append(s.docs[collection], docs...)
	return nil
}

func (s *memStore) BulkUpsert(_ context.Context, collection string, _ []string, docs []interface{}) error {
	return s.append(collection, docs)
}

func (s *memStore) BulkInsert(_ context.Context, collection string, docs []interface{}) error {
	return s.append(collection, docs)
}

func (s *memStore) UpdateOneBy(_ context.Context, collection string, _ map[string]interface{}, doc interface{}, _ bool) error {
	return s.append(collection, []interface{}{doc})
}

func (s *memStore) Count(context.Context, string, map[string]interface{}) (int64, error) {
	return 0, nil
}

func (s *memStore) Find(context.Context, string, map[string]interface{}, []string, interface{}) error {
	return nil
}

type memRegistry struct {
	low  *memStore
	high *memStore
}

func (r *memRegistry) Store(name repository.StoreName) repository.Store {
	if name == repository.StoreHigh {
		return r.high
	}
	return r.low
}

func (r *memRegistry) Both() []repository.Store {
	return []repository.Store{r.low, r.high}
}

func (r *memRegistry) Close(context.Context) error { return nil }

// memJobs is a minimal in-memory upload registry.
type memJobs struct {
	mu     sync.Mutex
	jobs   map[string]*model.UploadJob
	byFile map[string]string
}

func newMemJobs() *memJobs {
	return &memJobs{jobs: make(map[string]*model.UploadJob), byFile: make(map[string]string)}
}

func (r *memJobs) Create(_ context.Context, job *model.UploadJob) error {
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

func (r *memJobs) set(jobID string, fn func(*model.UploadJob)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return domainerrors.ErrJobNotFound
	}
	fn(job)
	return nil
}

func (r *memJobs) MarkProcessing(_ context.Context, jobID string) error {
	return r.set(jobID, func(j *model.UploadJob) { j.Status = model.UploadStatusProcessing })
}

func (r *memJobs) UpdateProgress(_ context.Context, jobID string, p repository.UploadProgress) error {
	return r.set(jobID, func(j *model.UploadJob) { j.ProcessedRecords = p.Processed })
}

func (r *memJobs) Complete(_ context.Context, jobID string, p repository.UploadProgress) error {
	return r.set(jobID, func(j *model.UploadJob) {
		j.Status = model.UploadStatusCompleted
		j.ProcessedRecords = p.Processed
		j.FailedRecords = p.Failed
		j.LowReviews = p.LowReviews
		j.HighReviews = p.HighReviews
	})
}

func (r *memJobs) Fail(_ context.Context, jobID string, message string) error {
	return r.set(jobID, func(j *model.UploadJob) {
		j.Status = model.UploadStatusFailed
		j.ErrorMessage = message
	})
}

func (r *memJobs) Get(_ context.Context, jobID string) (*model.UploadJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, domainerrors.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *memJobs) List(_ context.Context) ([]model.UploadJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.UploadJob, 0, len(r.jobs))
	for _, job := range r.jobs {
		out = append(out, *job)
	}
	return out, nil
}

// noopTrends satisfies TrendRepository for pipelines that never diverge.
type noopTrends struct{}

func (noopTrends) Count(context.Context, repository.StoreName, string) (int64, error) {
	return 0, nil
}
func (noopTrends) IDs(context.Context, repository.StoreName, string) ([]string, error) {
	return nil, nil
}
func (noopTrends) Get(context.Context, repository.StoreName, string) (*model.SalesTrend, error) {
	return nil, nil
}
func (noopTrends) Replace(context.Context, repository.StoreName, *model.SalesTrend) error {
	return nil
}

func newUploadHandler() *handlers.UploadHandler {
	logger := zap.NewNop()
	stores := &memRegistry{
		low:  &memStore{name: repository.StoreLow},
		high: &memStore{name: repository.StoreHigh},
	}
	jobs := newMemJobs()
	writer := usecase.NewBulkWriter(stores, jobs, usecase.WriterOptions{ChunkSize: 10, Workers: 2, ProfitMargin: 0.3}, logger)
	materializer := usecase.NewMaterializer(stores, 0.3, logger)
	reconciler := usecase.NewReconciler(noopTrends{}, logger)
	ingest := usecase.NewIngestService(jobs, writer, materializer, reconciler, logger)
	return handlers.NewUploadHandler(ingest, logger)
}

func multipartCSV(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

const uploadCSV = "customer_id,gender,age,city,product_id,product_name,category_id,category_name,price,order_date,quantity,payment_method,review_score,review_text\n" +
	"1,Male,30,Dhaka,10,Widget,5,Gadgets,19.99,2024-03-15,2,Card,4.5,great"

func postUpload(t *testing.T, handler *handlers.UploadHandler, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartCSV(t, fileName, content)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	require.NoError(t, handler.Upload(c))
	return rec
}

func TestUploadHandler(t *testing.T) {
	t.Run("accepts a valid csv and reports the completed job", func(t *testing.T) {
		rec := postUpload(t, newUploadHandler(), "sales.csv", uploadCSV)
		require.Equal(t, http.StatusOK, rec.Code)

		var job model.UploadJob
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
		assert.Equal(t, model.UploadStatusCompleted, job.Status)
		assert.Equal(t, int64(1), job.ProcessedRecords)
		assert.Equal(t, int64(1), job.HighReviews)
	})

	t.Run("rejects a duplicate file name with 409", func(t *testing.T) {
		handler := newUploadHandler()
		rec := postUpload(t, handler, "batch.csv", uploadCSV)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = postUpload(t, handler, "batch.csv", uploadCSV)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "batch.csv")
	})

	t.Run("rejects a malformed header with 400", func(t *testing.T) {
		rec := postUpload(t, newUploadHandler(), "broken.csv", "customer_id,quantity\n1,2")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing required columns")
	})

	t.Run("rejects a request without a file field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", strings.NewReader(""))
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		require.NoError(t, newUploadHandler().Upload(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown job id returns 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/uploads/nope", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("nope")
		require.NoError(t, newUploadHandler().GetJob(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
