package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainerrors "github.com/SdAm1n/DashAnalytics-sub000/internal/domain/errors"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/usecase"
)

type UploadHandler struct {
	ingest *usecase.IngestService
	logger *zap.Logger
}

func NewUploadHandler(ingest *usecase.IngestService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		ingest: ingest,
		logger: logger,
	}
}

// Upload accepts a CSV batch as multipart form data under the "file" field
// and runs the ingest synchronously. The reported job id can be polled even
// after a mid-ingest failure.
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "missing file field",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to read upload",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to read upload",
		})
	}

	jobID, err := h.ingest.Submit(c.Request().Context(), fileHeader.Filename, data)
	if err != nil {
		var dup *domainerrors.DuplicateUploadError
		if domainerrors.As(err, &dup) {
			return c.JSON(http.StatusConflict, map[string]string{
				"error": dup.Error(),
			})
		}
		var input *domainerrors.InputError
		if domainerrors.As(err, &input) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": input.Error(),
			})
		}
		h.logger.Error("Upload submission failed",
			zap.String("file_name", fileHeader.Filename),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to ingest upload",
		})
	}

	job, err := h.ingest.Status(c.Request().Context(), jobID)
	if err != nil {
		return c.JSON(http.StatusAccepted, map[string]string{"job_id": jobID})
	}
	return c.JSON(http.StatusOK, job)
}

// GetJob returns one upload job's lifecycle record.
func (h *UploadHandler) GetJob(c echo.Context) error {
	id := c.Param("id")

	job, err := h.ingest.Status(c.Request().Context(), id)
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Upload job not found",
			})
		}
		h.logger.Error("Failed to get upload job", zap.String("job_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get upload job",
		})
	}

	return c.JSON(http.StatusOK, job)
}

// ListJobs returns all upload jobs.
func (h *UploadHandler) ListJobs(c echo.Context) error {
	jobs, err := h.ingest.ListJobs(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list upload jobs", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to list upload jobs",
		})
	}

	return c.JSON(http.StatusOK, jobs)
}
