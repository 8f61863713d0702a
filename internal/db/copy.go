// Package db provides shared database helpers for bulk upsert and copy operations.
package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// copier is the COPY surface shared by Pool and pgx.Tx, so the same bulk
// loader serves both direct loads and the upsert temp-table path.
type copier interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// CopyInto bulk-loads rows into a table over the PostgreSQL COPY protocol.
// table may be schema-qualified ("analytics.jobs"). Empty input is a no-op.
func CopyInto(ctx context.Context, c copier, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	n, err := c.CopyFrom(ctx, tableIdentifier(table), columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, eris.Wrapf(err, "db: COPY INTO %s", table)
	}

	return n, nil
}

// tableIdentifier splits a possibly schema-qualified table name into a pgx
// identifier.
func tableIdentifier(table string) pgx.Identifier {
	parts := strings.SplitN(table, ".", 2)
	if len(parts) == 2 {
		return pgx.Identifier{parts[0], parts[1]}
	}
	return pgx.Identifier{table}
}
