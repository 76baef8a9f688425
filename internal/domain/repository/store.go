package repository

import "context"

// StoreName identifies one of the two logical document stores.
type StoreName string

// The two logical stores. Reviews are routed to exactly one of them by score;
// every other collection is written to both.
const (
	StoreLow  StoreName = "low"
	StoreHigh StoreName = "high"
)

// Store exposes the bulk primitives of one logical document store. All
// operations target named collections; callers choose the store, or write
// twice for replication. Implementations must be safe for concurrent use by
// the chunk workers.
type Store interface {
	Name() StoreName

	// BulkUpsert upserts each document, matching on the given filter fields.
	// Execution is unordered and continues past per-document key collisions,
	// which are expected when two chunks touch the same customer or product.
	BulkUpsert(ctx context.Context, collection string, filterFields []string, docs []interface{}) error

	// BulkInsert inserts the documents unordered.
	BulkInsert(ctx context.Context, collection string, docs []interface{}) error

	// UpdateOneBy updates a single document matched by filter, optionally
	// inserting it when absent.
	UpdateOneBy(ctx context.Context, collection string, filter map[string]interface{}, doc interface{}, upsert bool) error

	// Count returns the number of documents matching the query.
	Count(ctx context.Context, collection string, query map[string]interface{}) (int64, error)

	// Find decodes all documents matching the query into results, optionally
	// restricted to the given projection fields. results must be a pointer to
	// a slice.
	Find(ctx context.Context, collection string, query map[string]interface{}, projection []string, results interface{}) error
}

// StoreRegistry owns the two store handles and their lifecycle.
type StoreRegistry interface {
	Store(name StoreName) Store
	// Both returns the low and high stores, in that order.
	Both() []Store
	Close(ctx context.Context) error
}
