// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package publication provides the PostgreSQL implementation for the catalog's data access.

It leans on Postgres JSONB features to query inside stored manifests:
  - JSONB Storage: The canonical manifest document lives in a 'jsonb' column.
  - JSONB Path Queries: Subject filtering inspects 'metadata->subject' in SQL,
    tolerating the shorthand, object, and array shapes of that field.
  - Window Functions: COUNT(*) OVER() delivers totals without a second query.
*/
package publication

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/libretto/internal/platform/database/schema"
	"github.com/taibuivan/libretto/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed publication store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// subjectMatchClause extracts a comparable subject name from one element of
// 'metadata->subject', whatever shape the stored manifest used: a bare
// string, an object with a string name, or an object whose name is a
// language map (the undefined-language translation wins).
const subjectMatchClause = `
	EXISTS (
		SELECT 1
		FROM jsonb_array_elements(
			CASE jsonb_typeof(%[1]s->'metadata'->'subject')
				WHEN 'array' THEN %[1]s->'metadata'->'subject'
				WHEN 'null'  THEN '[]'::jsonb
				ELSE jsonb_build_array(%[1]s->'metadata'->'subject')
			END
		) AS subj(value)
		WHERE CASE jsonb_typeof(subj.value)
			WHEN 'string' THEN subj.value #>> '{}'
			WHEN 'object' THEN COALESCE(subj.value->>'name', subj.value#>>'{name,und}')
			ELSE NULL
		END ILIKE $%[2]d
	)`

/*
List returns a filtered, paginated slice of publications and the total count.

Description: Uses COUNT(*) OVER() so the total arrives with the page in a
single round-trip. Title search is a case-insensitive substring match; the
subject filter evaluates the manifest's subject field in SQL via
[subjectMatchClause].

Parameters:
  - context: context.Context
  - filter: Filter (title query, subject name)
  - limit: int
  - offset: int

Returns:
  - []*Publication: Slice of catalog entries (manifest column excluded)
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *postgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Publication, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s,
			COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s IS NULL
	`,
		schema.CorePublication.ID,
		schema.CorePublication.Slug,
		schema.CorePublication.Title,
		schema.CorePublication.CreatedAt,
		schema.CorePublication.UpdatedAt,
		schema.CorePublication.Table,
		schema.CorePublication.DeletedAt,
	))

	// Title search
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE $%d", schema.CorePublication.Title, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	// Subject filtering inside the stored manifest
	if filter.Subject != "" {
		queryBuilder.WriteString(" AND ")
		queryBuilder.WriteString(fmt.Sprintf(subjectMatchClause, schema.CorePublication.Manifest, argID))
		args = append(args, filter.Subject)
		argID++
	}

	// Stable ordering and pagination window
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d",
		schema.CorePublication.Title, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_publications")
	}
	defer rows.Close()

	publications := make([]*Publication, 0)
	totalCount := 0

	for rows.Next() {
		entry := &Publication{}
		if err := rows.Scan(&entry.ID, &entry.Slug, &entry.Title, &entry.CreatedAt, &entry.UpdatedAt, &totalCount); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_publication")
		}
		publications = append(publications, entry)
	}

	return publications, totalCount, nil
}

// FindByID fetches a single publication, including its manifest document.
func (repository *postgresRepository) FindByID(context context.Context, id string) (*Publication, error) {
	return repository.findBy(context, schema.CorePublication.ID, id)
}

// FindBySlug fetches a single publication by its unique slug.
func (repository *postgresRepository) FindBySlug(context context.Context, slug string) (*Publication, error) {
	return repository.findBy(context, schema.CorePublication.Slug, slug)
}

// findBy resolves a publication by a single unique column.
func (repository *postgresRepository) findBy(context context.Context, column, value string) (*Publication, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.CorePublication.ID,
		schema.CorePublication.Slug,
		schema.CorePublication.Title,
		schema.CorePublication.Manifest,
		schema.CorePublication.CreatedAt,
		schema.CorePublication.UpdatedAt,
		schema.CorePublication.Table,
		column,
		schema.CorePublication.DeletedAt,
	)

	entry := &Publication{}
	err := repository.pool.QueryRow(context, query, value).Scan(
		&entry.ID, &entry.Slug, &entry.Title, &entry.Manifest, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_publication")
	}

	return entry, nil
}

// Create inserts a new publication row.
func (repository *postgresRepository) Create(context context.Context, publication *Publication) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		schema.CorePublication.Table,
		schema.CorePublication.ID,
		schema.CorePublication.Slug,
		schema.CorePublication.Title,
		schema.CorePublication.Manifest,
		schema.CorePublication.CreatedAt,
		schema.CorePublication.UpdatedAt,
	)

	currentTime := time.Now()
	publication.CreatedAt = currentTime
	publication.UpdatedAt = currentTime

	_, err := repository.pool.Exec(context, query,
		publication.ID, publication.Slug, publication.Title, publication.Manifest,
		publication.CreatedAt, publication.UpdatedAt,
	)

	return dberr.Wrap(err, "create_publication")
}

// Update replaces the mutable columns of an existing publication.
func (repository *postgresRepository) Update(context context.Context, publication *Publication) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.CorePublication.Table,
		schema.CorePublication.Slug,
		schema.CorePublication.Title,
		schema.CorePublication.Manifest,
		schema.CorePublication.UpdatedAt,
		schema.CorePublication.ID,
		schema.CorePublication.DeletedAt,
	)

	publication.UpdatedAt = time.Now()

	commandTag, err := repository.pool.Exec(context, query,
		publication.ID, publication.Slug, publication.Title, publication.Manifest, publication.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_publication")
	}

	if commandTag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// SoftDelete hides a publication from the catalog without destroying the row.
func (repository *postgresRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = NOW()
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.CorePublication.Table,
		schema.CorePublication.DeletedAt,
		schema.CorePublication.ID,
		schema.CorePublication.DeletedAt,
	)

	commandTag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_publication")
	}

	if commandTag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}
