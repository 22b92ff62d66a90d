package seeder

import (
	"context"

	"placement-pro/internal/database"
)

// Seeder fills reference tables. Implementations must be idempotent.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
