package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"placement-pro/internal/config"
	"placement-pro/internal/database"
	"placement-pro/internal/database/migration"
	dbpostgres "placement-pro/internal/database/postgres"
	"placement-pro/internal/database/seeder"
	dbsqlite "placement-pro/internal/database/sqlite"
	"placement-pro/internal/domain/interview"
	"placement-pro/internal/infrastructure/cache"
	"placement-pro/internal/infrastructure/catalog"
	"placement-pro/internal/infrastructure/llm"
	"placement-pro/internal/repository"
	"placement-pro/internal/usecase"
	"placement-pro/internal/ws"
	"placement-pro/migrations"
)

type Container struct {
	Config config.Config
	Logger *log.Logger

	DB      database.DB
	Catalog *catalog.Loader
	Cache   *cache.Redis
	Hub     *ws.Hub
	LLM     llm.Generator

	SkillGap  *usecase.SkillGap
	Interview *usecase.Interview
	CatalogUC *usecase.Catalog

	stopHub chan struct{}
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := &Container{Config: cfg, Logger: logger}

	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.DB = db

	if db != nil {
		if cfg.Catalog.RunMigrations {
			if err := Migrate(ctx, db, cfg.Catalog.MigrationsDir, logger); err != nil {
				_ = c.Close()
				return nil, err
			}
		}
		if cfg.Catalog.RunSeeders {
			if err := Seed(ctx, db, logger); err != nil {
				_ = c.Close()
				return nil, err
			}
		}
	}

	loaderCfg := catalog.Config{Source: cfg.Catalog.Source, File: cfg.Catalog.File, Logger: logger}
	if db != nil {
		loaderCfg.Repo = repository.NewSQLCatalogRepository(db)
	}
	c.Catalog, err = catalog.NewLoader(loaderCfg)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	// Surface a broken catalog at startup; the loader logs the failure and
	// requests keep answering 503.
	_, _ = c.Catalog.Load(ctx)

	c.Cache = cache.NewRedis(cfg.Redis, logger)

	c.Hub = ws.NewHub(logger)
	c.stopHub = make(chan struct{})
	go c.Hub.Run(c.stopHub)

	var evaluator interview.Evaluator
	if cfg.LLM.Enabled() {
		gen, err := llm.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			logger.Printf("[Interview] LLM client unavailable, using fallback evaluations: %v", err)
		} else {
			c.LLM = gen
			evaluator = llm.NewEvaluator(gen, cfg.LLM.Timeout)
		}
	}

	opts := cfg.Scorer.Options()
	c.SkillGap = usecase.NewSkillGapUsecase(c.Catalog, opts, c.Cache, ws.NewNotifier(c.Hub), logger)
	c.Interview = usecase.NewInterviewUsecase(c.Catalog, opts, evaluator, cfg.LLM.Concurrency, logger)
	c.CatalogUC = usecase.NewCatalogUsecase(c.Catalog)

	return c, nil
}

// OpenDatabase connects the store backing the configured catalog source. It
// returns a nil DB for sources that need none.
func OpenDatabase(ctx context.Context, cfg config.Config) (database.DB, error) {
	switch cfg.Catalog.Source {
	case catalog.SourcePostgres:
		return dbpostgres.Connect(ctx, cfg.Database)
	case catalog.SourceSQLite:
		return dbsqlite.Open(ctx, cfg.Catalog.SQLitePath)
	default:
		return nil, nil
	}
}

func Migrate(ctx context.Context, db database.DB, dir string, logger *log.Logger) error {
	runner := migration.Runner{Dir: dir, FS: migrations.FS, Driver: db.Driver(), Logger: logger}
	applied, err := runner.Run(ctx, db.SQLDB())
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if logger != nil {
		logger.Printf("[Migration] applied=%d driver=%s", len(applied), db.Driver())
	}
	return nil
}

func Seed(ctx context.Context, db database.DB, logger *log.Logger) error {
	runner := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}
	if err := runner.Run(ctx, db); err != nil {
		return fmt.Errorf("run seeders: %w", err)
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		close(c.stopHub)
		c.stopHub = nil
	}
	if c.LLM != nil {
		_ = c.LLM.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
