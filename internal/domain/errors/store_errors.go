package errors

import "errors"

// ErrStoreUnavailable is returned when neither store accepted any write for
// an ingest, which is the only store failure that fails the whole job.
var ErrStoreUnavailable = errors.New("both stores unavailable")
