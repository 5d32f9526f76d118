package postgres

import (
	"context"
	"database/sql"

	"facilityassist/internal/model"
	"facilityassist/internal/repository"
)

// NoticePostgres is a PostgreSQL implementation of repository.NoticeRepository.
type NoticePostgres struct {
	db *sql.DB
}

// NewNoticePostgres creates a new NoticePostgres repository.
func NewNoticePostgres(db *sql.DB) *NoticePostgres {
	return &NoticePostgres{db: db}
}

var _ repository.NoticeRepository = (*NoticePostgres)(nil)

const noticeColumns = `
	n.id, n.title, n.content, n.written_by, u.name, u.username, n.created_at
`

func scanNotice(row interface{ Scan(...any) error }) (*model.Notice, error) {
	var n model.Notice
	if err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Content,
		&n.AuthorID,
		&n.AuthorName,
		&n.AuthorUsername,
		&n.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a new notice row and returns the stored record.
func (r *NoticePostgres) Create(ctx context.Context, notice *model.Notice) (*model.Notice, error) {
	const q = `
		INSERT INTO notices (title, content, written_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	out := *notice
	row := r.db.QueryRowContext(ctx, q, notice.Title, notice.Content, notice.AuthorID)
	if err := row.Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single notice by its ID.
func (r *NoticePostgres) FindByID(ctx context.Context, id int64) (*model.Notice, error) {
	q := `
		SELECT ` + noticeColumns + `
		FROM notices n
		JOIN users u ON u.id = n.written_by
		WHERE n.id = $1
	`
	return scanNotice(r.db.QueryRowContext(ctx, q, id))
}

// List returns notices using LIMIT/OFFSET pagination and a total count.
func (r *NoticePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Notice], error) {
	const qCount = `SELECT COUNT(*) FROM notices`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	q := `
		SELECT ` + noticeColumns + `
		FROM notices n
		JOIN users u ON u.id = n.written_by
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectNotices(rows)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Notice]{
		Items: items,
		Total: total,
	}, nil
}

// ListAll returns every notice, newest first.
func (r *NoticePostgres) ListAll(ctx context.Context) ([]model.Notice, error) {
	q := `
		SELECT ` + noticeColumns + `
		FROM notices n
		JOIN users u ON u.id = n.written_by
		ORDER BY n.created_at DESC, n.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNotices(rows)
}

func collectNotices(rows *sql.Rows) ([]model.Notice, error) {
	items := make([]model.Notice, 0)
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
