package model

import "time"

// Upload job lifecycle states. A job moves pending → processing and ends in
// exactly one of completed or failed.
const (
	UploadStatusPending    = "pending"
	UploadStatusProcessing = "processing"
	UploadStatusCompleted  = "completed"
	UploadStatusFailed     = "failed"
)

// UploadJob tracks one ingest job's lifecycle, counts and timing. It is
// replicated to both stores like every non-review record. file_name is unique
// across jobs; a second upload of the same name is rejected before any write.
type UploadJob struct {
	ID               string     `bson:"_id" json:"id"`
	FileName         string     `bson:"file_name" json:"file_name"`
	Status           string     `bson:"status" json:"status"`
	TotalRecords     int64      `bson:"total_records" json:"total_records"`
	ProcessedRecords int64      `bson:"processed_records" json:"processed_records"`
	FailedRecords    int64      `bson:"failed_records" json:"failed_records"`
	LowReviews       int64      `bson:"low_reviews" json:"low_reviews"`
	HighReviews      int64      `bson:"high_reviews" json:"high_reviews"`
	ErrorMessage     string     `bson:"error_message,omitempty" json:"error_message,omitempty"`
	CreatedAt        time.Time  `bson:"created_at" json:"created_at"`
	StartedAt        *time.Time `bson:"started_at,omitempty" json:"started_at,omitempty"`
	CompletedAt      *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// NewUploadJob creates a pending job for the given file.
func NewUploadJob(id, fileName string, totalRecords int64) *UploadJob {
	return &UploadJob{
		ID:           id,
		FileName:     fileName,
		Status:       UploadStatusPending,
		TotalRecords: totalRecords,
		CreatedAt:    time.Now().UTC(),
	}
}

// Terminal reports whether the job has reached a terminal state.
func (j *UploadJob) Terminal() bool {
	return j.Status == UploadStatusCompleted || j.Status == UploadStatusFailed
}
