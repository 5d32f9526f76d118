package repository

import (
	"context"

	"facilityassist/internal/model"
)

// DocumentRepository defines data access for document metadata using SQL
// queries only. No business logic here, strictly persistence operations.
// Every read filters on the active flag; soft-deleted rows are invisible.
type DocumentRepository interface {
	// Create inserts a new document row and returns the stored record
	// including values assigned by the database (id, uploaded_at).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindActiveByID returns an active document by its ID, with uploader
	// name and username resolved. Returns sql.ErrNoRows when the row is
	// missing or inactive.
	FindActiveByID(ctx context.Context, id int64) (*model.Document, error)

	// ListActive returns a page of active documents ordered by upload time
	// descending, plus the total active row count.
	ListActive(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// ListAllActive returns every active document in the same order, with
	// no pagination.
	ListAllActive(ctx context.Context) ([]model.Document, error)
}
