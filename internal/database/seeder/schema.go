package seeder

import (
	"context"
	"fmt"
	"strings"

	"placement-pro/internal/database"
)

// EnsureTableColumns fails when table lacks any of columns. The probe selects
// zero rows so it works on every supported driver.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}
	if len(columns) == 0 {
		return fmt.Errorf("no columns")
	}
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("empty column")
		}
	}

	rows, err := db.Query(ctx, `SELECT `+strings.Join(columns, ", ")+` FROM `+table+` LIMIT 0`)
	if err != nil {
		return fmt.Errorf("schema mismatch: %s(%s): %w", table, strings.Join(columns, ","), err)
	}
	defer rows.Close()
	for rows.Next() {
	}
	return rows.Err()
}
