package repository

import (
	"context"

	"facilityassist/internal/model"
)

// NoticeRepository defines data access for notices.
type NoticeRepository interface {
	// Create inserts a new notice row and returns the stored record.
	Create(ctx context.Context, notice *model.Notice) (*model.Notice, error)

	// FindByID returns a notice by its ID with author fields resolved.
	FindByID(ctx context.Context, id int64) (*model.Notice, error)

	// List returns a page of notices ordered by creation time descending,
	// plus the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Notice], error)

	// ListAll returns every notice in the same order, with no pagination.
	ListAll(ctx context.Context) ([]model.Notice, error)
}
