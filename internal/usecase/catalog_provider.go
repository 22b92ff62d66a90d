package usecase

import (
	"context"
	"time"

	"placement-pro/internal/infrastructure/catalog"
	"placement-pro/internal/ws"
)

type CatalogProvider interface {
	Load(ctx context.Context) (catalog.Snapshot, error)
}

type ReportCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type AnalysisNotifier interface {
	AnalysisCompleted(evt ws.AnalysisCompletedEvent)
}
