package repository

import (
	"context"

	"facilityassist/internal/model"
)

// UnitRepository defines data access for organizational units.
type UnitRepository interface {
	// Create inserts a new unit row and returns the stored record.
	Create(ctx context.Context, unit *model.Unit) (*model.Unit, error)

	// FindByID returns a unit by primary key.
	FindByID(ctx context.Context, id int64) (*model.Unit, error)

	// ExistsByName reports whether a unit with the display name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// List returns all units ordered by name.
	List(ctx context.Context) ([]model.Unit, error)
}
