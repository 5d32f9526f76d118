package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"facilityassist/internal/auth"
	"facilityassist/internal/model"
	"facilityassist/internal/repository"
	"facilityassist/internal/storage"
)

var validate = validator.New()

// UploadDocumentRequest is the input for uploading a document. The reader
// streams the file bytes; declared content type and size are stored verbatim.
type UploadDocumentRequest struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"omitempty,max=1000"`
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// DocumentSummary is the list-view representation of a document.
type DocumentSummary struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	FileName      string    `json:"file_name"`
	FileType      string    `json:"file_type"`
	FileSize      int64     `json:"file_size"`
	UploaderName  string    `json:"uploader_name"`
	UploadedAt    time.Time `json:"uploaded_at"`
	FormattedDate string    `json:"formatted_date"`
	FormattedSize string    `json:"formatted_size"`
}

// DocumentDetail is the full metadata representation.
type DocumentDetail struct {
	DocumentSummary
	UploaderUsername string `json:"uploader_username"`
}

// DocumentDownload carries the raw bytes plus the stored disposition metadata.
type DocumentDownload struct {
	FileName string
	FileType string
	FileSize int64
	Content  []byte
}

// DocumentListResult is a page of document summaries plus pagination metadata.
type DocumentListResult struct {
	Documents []DocumentSummary `json:"documents"`
	PageInfo
}

// DocumentService defines the use cases around documents. Soft-deleted
// documents are invisible to every method here.
type DocumentService interface {
	// List returns a page of active documents, newest first. page is 0-based.
	List(ctx context.Context, page, size int) (*DocumentListResult, error)

	// ListAll returns every active document as a single page.
	ListAll(ctx context.Context) (*DocumentListResult, error)

	// Get returns full metadata for a single active document.
	Get(ctx context.Context, id int64) (*DocumentDetail, error)

	// Download returns the stored bytes and disposition metadata.
	Download(ctx context.Context, id int64) (*DocumentDownload, error)

	// Upload streams the file to object storage, saves metadata to the
	// database, and rolls the object back if the database save fails.
	Upload(ctx context.Context, principal *auth.Principal, req UploadDocumentRequest) (*DocumentDetail, error)
}

type documentService struct {
	store storage.Storage
	repo  repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository) DocumentService {
	return &documentService{store: store, repo: repo}
}

func (s *documentService) List(ctx context.Context, page, size int) (*DocumentListResult, error) {
	page, size, pq := NormalizePage(page, size)

	res, err := s.repo.ListActive(ctx, pq)
	if err != nil {
		return nil, err
	}

	return &DocumentListResult{
		Documents: toDocumentSummaries(res.Items),
		PageInfo:  NewPageInfo(page, size, res.Total),
	}, nil
}

func (s *documentService) ListAll(ctx context.Context) (*DocumentListResult, error) {
	items, err := s.repo.ListAllActive(ctx)
	if err != nil {
		return nil, err
	}

	return &DocumentListResult{
		Documents: toDocumentSummaries(items),
		PageInfo:  SinglePageInfo(len(items)),
	}, nil
}

func (s *documentService) Get(ctx context.Context, id int64) (*DocumentDetail, error) {
	doc, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDocumentDetail(doc), nil
}

func (s *documentService) Download(ctx context.Context, id int64) (*DocumentDownload, error) {
	doc, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	obj, _, err := s.store.Get(ctx, doc.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("fetch from storage: %w", err)
	}
	defer obj.Close()

	content, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read from storage: %w", err)
	}

	return &DocumentDownload{
		FileName: doc.FileName,
		FileType: doc.FileType,
		FileSize: doc.FileSize,
		Content:  content,
	}, nil
}

func (s *documentService) Upload(ctx context.Context, principal *auth.Principal, req UploadDocumentRequest) (*DocumentDetail, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be blank", ErrValidation)
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validationMessage(err))
	}
	if req.Reader == nil {
		return nil, fmt.Errorf("%w: file is required", ErrValidation)
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Store bytes under a generated key; the original file name survives only
	// as metadata.
	ext := filepath.Ext(req.FileName)
	key := filepath.ToSlash(filepath.Join("documents", uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, req.Reader, storage.PutObjectOptions{
		Size:        req.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": req.FileName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		Title:            req.Title,
		Description:      req.Description,
		FileName:         req.FileName,
		FileType:         contentType,
		FileSize:         req.Size,
		StorageKey:       objInfo.Key,
		UploaderID:       principal.ID,
		UploaderName:     principal.Name,
		UploaderUsername: principal.Username,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return toDocumentDetail(stored), nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		switch f.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", strings.ToLower(f.Field()))
		case "max":
			return fmt.Sprintf("%s exceeds the maximum length of %s", strings.ToLower(f.Field()), f.Param())
		}
		return fmt.Sprintf("%s is invalid", strings.ToLower(f.Field()))
	}
	return "invalid input"
}

func toDocumentSummaries(items []model.Document) []DocumentSummary {
	out := make([]DocumentSummary, 0, len(items))
	for _, d := range items {
		out = append(out, toDocumentSummary(&d))
	}
	return out
}

func toDocumentSummary(d *model.Document) DocumentSummary {
	return DocumentSummary{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		FileName:      d.FileName,
		FileType:      d.FileType,
		FileSize:      d.FileSize,
		UploaderName:  d.UploaderName,
		UploadedAt:    d.UploadedAt,
		FormattedDate: formatDate(d.UploadedAt),
		FormattedSize: formatFileSize(d.FileSize),
	}
}

func toDocumentDetail(d *model.Document) *DocumentDetail {
	return &DocumentDetail{
		DocumentSummary:  toDocumentSummary(d),
		UploaderUsername: d.UploaderUsername,
	}
}
