package repository

import (
	"context"
	"time"

	"docvault/internal/model"
)

// DocumentRepository defines data access for document metadata rows using SQL
// queries only. No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row
	// (may include values set by the DB).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID. Missing rows surface sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns one page of documents plus the total row count under the
	// same filter predicate.
	List(ctx context.Context, q DocumentQuery) (*PageResult[model.Document], error)

	// Update applies the non-nil fields of patch to the row. The stored
	// filename is immutable and never part of the patch.
	Update(ctx context.Context, id string, patch DocumentPatch) (*model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error

	// Count returns the total number of document rows.
	Count(ctx context.Context) (int, error)

	// CountCreatedSince returns the number of rows created at or after ts.
	CountCreatedSince(ctx context.Context, ts time.Time) (int, error)
}

// DocumentQuery holds limit/offset pagination parameters plus the optional
// filter predicate. Zero values mean "no filter"; filters combine with AND.
type DocumentQuery struct {
	Limit    int
	Offset   int
	Search   string // case-insensitive substring of title
	Category model.Category
	Type     model.DocType
	Origin   model.Origin
}

// DocumentPatch carries a partial metadata update. Nil pointers leave the
// corresponding column unchanged.
type DocumentPatch struct {
	Title      *string
	FileNumber *string
	Category   *model.Category
	Type       *model.DocType
	Origin     *model.Origin
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
