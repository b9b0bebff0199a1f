package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"docvault/internal/model"
	"docvault/internal/repository"
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

const documentColumns = "id, title, filename, file_number, category, doc_type, origin, created_at"

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Filename,
		&d.FileNumber,
		&d.Category,
		&d.Type,
		&d.Origin,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, title, filename, file_number, category, doc_type, origin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Filename,
		doc.FileNumber,
		doc.Category,
		doc.Type,
		doc.Origin,
		doc.CreatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// buildFilter assembles the WHERE clause shared by the count and page queries
// so that Total always reflects the same predicate as the returned slice.
func buildFilter(q repository.DocumentQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if q.Search != "" {
		add("title ILIKE $%d", "%"+q.Search+"%")
	}
	if q.Category != "" {
		add("category = $%d", string(q.Category))
	}
	if q.Type != "" {
		add("doc_type = $%d", string(q.Type))
	}
	if q.Origin != "" {
		add("origin = $%d", string(q.Origin))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns documents using LIMIT/OFFSET pagination and a total count
// computed under the identical filter.
func (r *DocumentPostgres) List(ctx context.Context, q repository.DocumentQuery) (*repository.PageResult[model.Document], error) {
	where, args := buildFilter(q)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	// Secondary ordering on id keeps pagination deterministic when rows share
	// a creation timestamp.
	pageQ := fmt.Sprintf(
		"SELECT "+documentColumns+" FROM documents%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2,
	)
	rows, err := r.db.QueryContext(ctx, pageQ, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// Update applies the non-nil patch fields and returns the updated row.
// With an empty patch it degrades to a read.
func (r *DocumentPostgres) Update(ctx context.Context, id string, patch repository.DocumentPatch) (*model.Document, error) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.FileNumber != nil {
		set("file_number", *patch.FileNumber)
	}
	if patch.Category != nil {
		set("category", string(*patch.Category))
	}
	if patch.Type != nil {
		set("doc_type", string(*patch.Type))
	}
	if patch.Origin != nil {
		set("origin", string(*patch.Origin))
	}

	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)
	q := fmt.Sprintf(
		"UPDATE documents SET %s WHERE id = $%d RETURNING "+documentColumns,
		strings.Join(sets, ", "), len(args),
	)
	return scanDocument(r.db.QueryRowContext(ctx, q, args...))
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// Count returns the total number of document rows.
func (r *DocumentPostgres) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}

// CountCreatedSince returns the number of rows created at or after ts.
func (r *DocumentPostgres) CountCreatedSince(ctx context.Context, ts time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE created_at >= $1`, ts).Scan(&n)
	return n, err
}
