package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/google/uuid"

	"docvault/internal/logger"
	"docvault/internal/model"
	"docvault/internal/repository"
	"docvault/internal/storage"
)

const (
	// PDFContentType is the only MIME type accepted for uploads; the match is exact.
	PDFContentType = "application/pdf"
	// MaxUploadSize is the upload ceiling in bytes (10 MiB).
	MaxUploadSize = 10 << 20

	defaultPageLimit = 10
	blobPrefix       = "documents/"
)

var whitespace = regexp.MustCompile(`\s+`)

// UploadInput carries everything needed to create a document.
type UploadInput struct {
	Reader           io.Reader
	OriginalFilename string
	ContentType      string
	Size             int64
	Title            string
	FileNumber       string
	Category         model.Category
	Type             model.DocType
	Origin           model.Origin
}

// ListQuery is the page/filter request for document listings. Page starts at 1.
type ListQuery struct {
	Page     int
	Limit    int
	Search   string
	Category model.Category
	Type     model.DocType
	Origin   model.Origin
}

// Pagination describes one page of a filtered listing. Total counts all rows
// matching the filter, not just the returned slice.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items      []model.Document `json:"items"`
	Pagination Pagination       `json:"pagination"`
}

// UpdateInput is a partial metadata update; nil fields are left unchanged.
// The stored file itself is immutable once uploaded.
type UpdateInput struct {
	Title      *string
	FileNumber *string
	Category   *model.Category
	Type       *model.DocType
	Origin     *model.Origin
}

// Download bundles a blob stream with the metadata row it belongs to.
// The caller owns Content and must close it.
type Download struct {
	Content  io.ReadCloser
	Size     int64
	Document *model.Document
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload validates the input, writes the blob, then inserts the metadata
	// row. A blob orphaned by a failed insert is logged and left in place.
	Upload(ctx context.Context, in UploadInput) (*model.Document, error)

	// List returns one page of documents under the given filter plus
	// pagination metadata computed under the same predicate.
	List(ctx context.Context, q ListQuery) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Download returns the blob stream for a document. A row whose blob is
	// missing reports ErrNotFound, not an internal error.
	Download(ctx context.Context, id string) (*Download, error)

	// Update applies a partial metadata update.
	Update(ctx context.Context, id string, in UpdateInput) (*model.Document, error)

	// Delete removes the blob (best effort) and then the metadata row.
	Delete(ctx context.Context, id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store storage.Storage
	repo  repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository) DocumentService {
	return &documentService{store: store, repo: repo}
}

func blobKey(filename string) string {
	return blobPrefix + filename
}

// storedFilename builds the server-side blob name: a fresh UUID joined to the
// sanitized client name, so concurrent uploads of equal names cannot collide.
func storedFilename(original string) string {
	return uuid.New().String() + "-" + whitespace.ReplaceAllString(original, "_")
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*model.Document, error) {
	// Validation order is part of the contract: presence, then media type,
	// then size. Each failure maps to a distinct status.
	if in.Reader == nil {
		return nil, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !in.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category", ErrInvalidInput)
	}
	if in.Type != "" && !in.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type", ErrInvalidInput)
	}
	if in.Origin != "" && !in.Origin.Valid() {
		return nil, fmt.Errorf("%w: unknown origin", ErrInvalidInput)
	}
	if in.ContentType != PDFContentType {
		return nil, ErrUnsupportedMediaType
	}
	if in.Size > MaxUploadSize {
		return nil, ErrPayloadTooLarge
	}

	genName := storedFilename(in.OriginalFilename)

	objInfo, err := s.store.Put(ctx, blobKey(genName), in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.OriginalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:         uuid.New().String(),
		Title:      in.Title,
		Filename:   genName,
		FileNumber: in.FileNumber,
		Category:   in.Category,
		Type:       in.Type,
		Origin:     in.Origin,
		CreatedAt:  time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Keep the blob: losing an uploaded file is worse than an orphan.
		// The key is logged so an operator sweep can reclaim it.
		log := logger.Get()
		log.Warn().
			Str("event", "orphaned_blob").
			Str("key", objInfo.Key).
			Err(err).
			Msg("metadata insert failed after blob write")
		return nil, fmt.Errorf("save metadata: %w", err)
	}
	return stored, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, q ListQuery) (*DocumentListResult, error) {
	if q.Category != "" && !q.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category", ErrInvalidInput)
	}
	if q.Type != "" && !q.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type", ErrInvalidInput)
	}
	if q.Origin != "" && !q.Origin.Valid() {
		return nil, fmt.Errorf("%w: unknown origin", ErrInvalidInput)
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageLimit
	}

	res, err := s.repo.List(ctx, repository.DocumentQuery{
		Limit:    q.Limit,
		Offset:   (q.Page - 1) * q.Limit,
		Search:   q.Search,
		Category: q.Category,
		Type:     q.Type,
		Origin:   q.Origin,
	})
	if err != nil {
		return nil, err
	}

	totalPages := res.Total / q.Limit
	if res.Total%q.Limit != 0 {
		totalPages++
	}

	return &DocumentListResult{
		Items: res.Items,
		Pagination: Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      res.Total,
			TotalPages: totalPages,
		},
	}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Download streams the blob backing a document row.
func (s *documentService) Download(ctx context.Context, id string) (*Download, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rc, info, err := s.store.Get(ctx, blobKey(doc.Filename))
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			// Row without a blob is a recoverable inconsistency, not a crash.
			log := logger.Get()
			log.Warn().
				Str("event", "missing_blob").
				Str("document_id", doc.ID).
				Str("key", blobKey(doc.Filename)).
				Msg("metadata row has no backing blob")
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read storage: %w", err)
	}

	return &Download{Content: rc, Size: info.Size, Document: doc}, nil
}

// Update applies a partial metadata update. The stored filename never changes.
func (s *documentService) Update(ctx context.Context, id string, in UpdateInput) (*model.Document, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if in.Title != nil && *in.Title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}
	if in.Category != nil && !in.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category", ErrInvalidInput)
	}
	if in.Type != nil && !in.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type", ErrInvalidInput)
	}
	if in.Origin != nil && !in.Origin.Valid() {
		return nil, fmt.Errorf("%w: unknown origin", ErrInvalidInput)
	}

	doc, err := s.repo.Update(ctx, id, repository.DocumentPatch{
		Title:      in.Title,
		FileNumber: in.FileNumber,
		Category:   in.Category,
		Type:       in.Type,
		Origin:     in.Origin,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes the blob first, then the metadata row. A storage failure does
// not abort the row delete: the listing staying consistent takes priority over
// blob bookkeeping, and the error is logged for an operator sweep.
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, blobKey(doc.Filename)); err != nil {
		log := logger.Get()
		log.Warn().
			Str("event", "blob_delete_failed").
			Str("document_id", doc.ID).
			Str("key", blobKey(doc.Filename)).
			Err(err).
			Msg("continuing with metadata delete")
	}

	return s.repo.Delete(ctx, id)
}
