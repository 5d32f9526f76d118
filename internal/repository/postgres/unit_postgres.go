package postgres

import (
	"context"
	"database/sql"

	"facilityassist/internal/model"
	"facilityassist/internal/repository"
)

// UnitPostgres is a PostgreSQL implementation of repository.UnitRepository.
type UnitPostgres struct {
	db *sql.DB
}

// NewUnitPostgres creates a new UnitPostgres repository.
func NewUnitPostgres(db *sql.DB) *UnitPostgres {
	return &UnitPostgres{db: db}
}

var _ repository.UnitRepository = (*UnitPostgres)(nil)

// Create inserts a new unit row and returns the stored record.
func (r *UnitPostgres) Create(ctx context.Context, unit *model.Unit) (*model.Unit, error) {
	const q = `
		INSERT INTO units (name, code)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	out := *unit
	row := r.db.QueryRowContext(ctx, q, unit.Name, unit.Code)
	if err := row.Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single unit by primary key.
func (r *UnitPostgres) FindByID(ctx context.Context, id int64) (*model.Unit, error) {
	const q = `SELECT id, name, code, created_at FROM units WHERE id = $1`
	var u model.Unit
	row := r.db.QueryRowContext(ctx, q, id)
	if err := row.Scan(&u.ID, &u.Name, &u.Code, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// ExistsByName reports whether a unit with the display name exists.
func (r *UnitPostgres) ExistsByName(ctx context.Context, name string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM units WHERE name = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// List returns all units ordered by name.
func (r *UnitPostgres) List(ctx context.Context) ([]model.Unit, error) {
	const q = `SELECT id, name, code, created_at FROM units ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Unit, 0)
	for rows.Next() {
		var u model.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.Code, &u.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
