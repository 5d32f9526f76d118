package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"facilityassist/internal/auth"
	"facilityassist/internal/model"
	"facilityassist/internal/repository"
)

// CreateNoticeRequest is the input for posting a new notice.
type CreateNoticeRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// NoticeSummary is the list-view representation: no content body.
type NoticeSummary struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	AuthorName    string    `json:"author_name"`
	CreatedAt     time.Time `json:"created_at"`
	FormattedDate string    `json:"formatted_date"`
}

// NoticeDetail is the full notice representation.
type NoticeDetail struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	AuthorName     string    `json:"author_name"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
	FormattedDate  string    `json:"formatted_date"`
}

// NoticeListResult is a page of notice summaries plus pagination metadata.
type NoticeListResult struct {
	Notices []NoticeSummary `json:"notices"`
	PageInfo
}

// NoticeService defines the use cases around notices.
type NoticeService interface {
	// List returns a page of notices, newest first. page is 0-based.
	List(ctx context.Context, page, size int) (*NoticeListResult, error)

	// ListAll returns every notice as a single page.
	ListAll(ctx context.Context) (*NoticeListResult, error)

	// Get returns a single notice by ID.
	Get(ctx context.Context, id int64) (*NoticeDetail, error)

	// Create posts a new notice authored by the given principal.
	Create(ctx context.Context, principal *auth.Principal, req CreateNoticeRequest) (*NoticeDetail, error)
}

type noticeService struct {
	repo repository.NoticeRepository
}

// NewNoticeService constructs a new NoticeService.
func NewNoticeService(repo repository.NoticeRepository) NoticeService {
	return &noticeService{repo: repo}
}

func (s *noticeService) List(ctx context.Context, page, size int) (*NoticeListResult, error) {
	page, size, pq := NormalizePage(page, size)

	res, err := s.repo.List(ctx, pq)
	if err != nil {
		return nil, err
	}

	return &NoticeListResult{
		Notices:  toNoticeSummaries(res.Items),
		PageInfo: NewPageInfo(page, size, res.Total),
	}, nil
}

func (s *noticeService) ListAll(ctx context.Context) (*NoticeListResult, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return &NoticeListResult{
		Notices:  toNoticeSummaries(items),
		PageInfo: SinglePageInfo(len(items)),
	}, nil
}

func (s *noticeService) Get(ctx context.Context, id int64) (*NoticeDetail, error) {
	notice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toNoticeDetail(notice), nil
}

func (s *noticeService) Create(ctx context.Context, principal *auth.Principal, req CreateNoticeRequest) (*NoticeDetail, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be blank", ErrValidation)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: content must not be blank", ErrValidation)
	}

	notice := &model.Notice{
		Title:          req.Title,
		Content:        req.Content,
		AuthorID:       principal.ID,
		AuthorName:     principal.Name,
		AuthorUsername: principal.Username,
	}
	stored, err := s.repo.Create(ctx, notice)
	if err != nil {
		return nil, err
	}
	return toNoticeDetail(stored), nil
}

func toNoticeSummaries(items []model.Notice) []NoticeSummary {
	out := make([]NoticeSummary, 0, len(items))
	for _, n := range items {
		out = append(out, NoticeSummary{
			ID:            n.ID,
			Title:         n.Title,
			AuthorName:    n.AuthorName,
			CreatedAt:     n.CreatedAt,
			FormattedDate: formatDate(n.CreatedAt),
		})
	}
	return out
}

func toNoticeDetail(n *model.Notice) *NoticeDetail {
	return &NoticeDetail{
		ID:             n.ID,
		Title:          n.Title,
		Content:        n.Content,
		AuthorName:     n.AuthorName,
		AuthorUsername: n.AuthorUsername,
		CreatedAt:      n.CreatedAt,
		FormattedDate:  formatDate(n.CreatedAt),
	}
}
