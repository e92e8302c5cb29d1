// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subject

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/libretto/internal/platform/database/schema"
	"github.com/taibuivan/libretto/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
ListRawSubjects extracts every subject element from the stored manifests.

Description: 'metadata.subject' is polymorphic in stored documents; the
CASE normalizes the shorthand and object shapes into a one-element array
so jsonb_array_elements can unnest all of them uniformly. Identical
elements are grouped with a usage count. Decoding the elements is the
service's job.

Parameters:
  - context: context.Context

Returns:
  - []RawSubject: Serialized subject elements with usage counts
  - error: Database execution errors
*/
func (repository *PostgresRepository) ListRawSubjects(context context.Context) ([]RawSubject, error) {
	query := fmt.Sprintf(`
		SELECT subj.value::text AS element, COUNT(*) AS usage
		FROM %s p,
			jsonb_array_elements(
				CASE jsonb_typeof(p.%s->'metadata'->'subject')
					WHEN 'array' THEN p.%s->'metadata'->'subject'
					WHEN 'null'  THEN '[]'::jsonb
					ELSE jsonb_build_array(p.%s->'metadata'->'subject')
				END
			) AS subj(value)
		WHERE p.%s IS NULL
		GROUP BY subj.value
	`,
		schema.CorePublication.Table,
		schema.CorePublication.Manifest,
		schema.CorePublication.Manifest,
		schema.CorePublication.Manifest,
		schema.CorePublication.DeletedAt,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_raw_subjects")
	}
	defer rows.Close()

	elements := make([]RawSubject, 0)
	for rows.Next() {
		raw := RawSubject{}
		if err := rows.Scan(&raw.Element, &raw.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_raw_subject")
		}
		elements = append(elements, raw)
	}

	return elements, nil
}
