package postgres

import (
	"context"
	"database/sql"

	"facilityassist/internal/model"
	"facilityassist/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `
	d.id, d.title, d.description, d.file_name, d.file_type, d.file_size,
	d.storage_key, d.uploaded_by, u.name, u.username, d.uploaded_at, d.is_active
`

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Description,
		&d.FileName,
		&d.FileType,
		&d.FileSize,
		&d.StorageKey,
		&d.UploaderID,
		&d.UploaderName,
		&d.UploaderUsername,
		&d.UploadedAt,
		&d.Active,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (title, description, file_name, file_type, file_size, storage_key, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, uploaded_at, is_active
	`
	out := *doc
	row := r.db.QueryRowContext(ctx, q,
		doc.Title,
		doc.Description,
		doc.FileName,
		doc.FileType,
		doc.FileSize,
		doc.StorageKey,
		doc.UploaderID,
	)
	if err := row.Scan(&out.ID, &out.UploadedAt, &out.Active); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindActiveByID fetches a single active document by its ID.
func (r *DocumentPostgres) FindActiveByID(ctx context.Context, id int64) (*model.Document, error) {
	q := `
		SELECT ` + documentColumns + `
		FROM documents d
		JOIN users u ON u.id = d.uploaded_by
		WHERE d.id = $1 AND d.is_active = TRUE
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// ListActive returns active documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) ListActive(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	// Count total active rows
	const qCount = `SELECT COUNT(*) FROM documents WHERE is_active = TRUE`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	q := `
		SELECT ` + documentColumns + `
		FROM documents d
		JOIN users u ON u.id = d.uploaded_by
		WHERE d.is_active = TRUE
		ORDER BY d.uploaded_at DESC, d.id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectDocuments(rows)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// ListAllActive returns every active document, newest first.
func (r *DocumentPostgres) ListAllActive(ctx context.Context) ([]model.Document, error) {
	q := `
		SELECT ` + documentColumns + `
		FROM documents d
		JOIN users u ON u.id = d.uploaded_by
		WHERE d.is_active = TRUE
		ORDER BY d.uploaded_at DESC, d.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDocuments(rows)
}

func collectDocuments(rows *sql.Rows) ([]model.Document, error) {
	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
