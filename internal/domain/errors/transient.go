package errors

// TransientStoreError wraps a store error the adapter classified as
// retriable (timeouts, connection refusal). The bulk writer retries these
// once within the chunk before treating them as chunk errors.
type TransientStoreError struct {
	Err error
}

func (e *TransientStoreError) Error() string {
	return "transient store error: " + e.Err.Error()
}

func (e *TransientStoreError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a classified transient store error.
func IsTransient(err error) bool {
	var t *TransientStoreError
	return As(err, &t)
}
