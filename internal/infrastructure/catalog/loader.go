package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"placement-pro/internal/domain/interview"
	"placement-pro/internal/domain/skillgap"
	"placement-pro/internal/repository"
)

const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// ErrUnavailable wraps every load failure so callers can tell a broken
// catalog source apart from bad requests.
var ErrUnavailable = errors.New("catalog unavailable")

// Snapshot is an immutable, fully validated catalog with its question bank.
type Snapshot struct {
	Catalog *skillgap.Catalog
	Bank    *interview.QuestionBank
	Source  string
}

type Config struct {
	Source string
	File   string
	// Repo backs the postgres and sqlite sources.
	Repo   repository.CatalogRepository
	Logger *log.Logger
}

// Loader builds the snapshot once and serves the cached result, error
// included, to every later caller.
type Loader struct {
	cfg Config

	once     sync.Once
	snapshot Snapshot
	err      error
}

func NewLoader(cfg Config) (*Loader, error) {
	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))
	if cfg.Source == "" {
		cfg.Source = SourceEmbedded
	}
	switch cfg.Source {
	case SourceEmbedded:
	case SourceFile:
		if strings.TrimSpace(cfg.File) == "" {
			return nil, fmt.Errorf("catalog source %q requires a file path", cfg.Source)
		}
	case SourcePostgres, SourceSQLite:
		if cfg.Repo == nil {
			return nil, fmt.Errorf("catalog source %q requires a repository", cfg.Source)
		}
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
	return &Loader{cfg: cfg}, nil
}

func (l *Loader) Source() string {
	return l.cfg.Source
}

func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	l.once.Do(func() {
		l.snapshot, l.err = l.load(ctx)
		if l.cfg.Logger == nil {
			return
		}
		if l.err != nil {
			l.cfg.Logger.Printf("[Catalog] load failed source=%s err=%v", l.cfg.Source, l.err)
			return
		}
		l.cfg.Logger.Printf("[Catalog] loaded source=%s dimensions=%d profiles=%d fingerprint=%s",
			l.cfg.Source, l.snapshot.Catalog.Len(), len(l.snapshot.Catalog.Profiles()), l.snapshot.Catalog.Fingerprint())
	})
	return l.snapshot, l.err
}

func (l *Loader) load(ctx context.Context) (Snapshot, error) {
	var (
		spec   skillgap.CatalogSpec
		topics []interview.Topic
	)

	switch l.cfg.Source {
	case SourceEmbedded:
		spec = skillgap.DefaultSpec()
	case SourceFile:
		doc, err := ReadFile(l.cfg.File)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		spec, topics = doc.CatalogSpec, doc.QuestionBank
	case SourcePostgres, SourceSQLite:
		var err error
		spec, err = l.cfg.Repo.LoadCatalogSpec(ctx)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		topics, err = l.cfg.Repo.LoadQuestionTopics(ctx)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}

	c, err := skillgap.NewCatalog(spec)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if len(topics) == 0 {
		topics = interview.DefaultTopics()
	}
	bank, err := interview.NewQuestionBank(topics)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return Snapshot{Catalog: c, Bank: bank, Source: l.cfg.Source}, nil
}
