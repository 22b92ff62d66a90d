package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"placement-pro/internal/domain/interview"
	"placement-pro/internal/domain/skillgap"
	"placement-pro/internal/infrastructure/catalog"
	"placement-pro/internal/ws"
)

type mockProvider struct {
	snap catalog.Snapshot
	err  error
}

func (m mockProvider) Load(context.Context) (catalog.Snapshot, error) {
	return m.snap, m.err
}

func defaultProvider() mockProvider {
	return mockProvider{snap: catalog.Snapshot{
		Catalog: skillgap.MustDefaultCatalog(),
		Bank:    interview.MustDefaultBank(),
		Source:  catalog.SourceEmbedded,
	}}
}

type mockCache struct {
	mu    sync.Mutex
	items map[string][]byte
	gets  int
	sets  int
}

func newMockCache() *mockCache {
	return &mockCache{items: map[string][]byte{}}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	b, ok := m.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = b
	return nil
}

type mockNotifier struct {
	events []ws.AnalysisCompletedEvent
}

func (m *mockNotifier) AnalysisCompleted(evt ws.AnalysisCompletedEvent) {
	m.events = append(m.events, evt)
}

type mockEvaluator struct {
	score int
	err   error
}

func (m mockEvaluator) Evaluate(context.Context, string, string) (interview.Evaluation, error) {
	if m.err != nil {
		return interview.Evaluation{}, m.err
	}
	return interview.Evaluation{Score: m.score, Feedback: "fine"}, nil
}
