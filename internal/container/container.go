package container

import (
	"context"
	"fmt"

	"lotogen/adapters/excel"
	"lotogen/adapters/postgres"
	"lotogen/adapters/rng"
	"lotogen/app"
	"lotogen/internal"
	"lotogen/internal/config"
	"lotogen/internal/errors"
	"lotogen/internal/migration"
	"lotogen/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Data access
	Corpus ports.CorpusLoader
	Draws  ports.DrawRepository // nil without a database
	Runs   ports.RunRepository  // nil without a database
	RNG    ports.RNGPort

	// Services
	Stats      *app.StatsService
	Generation *app.GenerationService
}

// New creates a container. The draw history comes from DRAWS_FILE when set,
// otherwise from the draws table; one of the two must be configured.
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	c := &Container{
		Config: cfg,
		Logger: logger,
		RNG:    rng.NewSeededAdapter(),
	}
	if cfg.Data.DrawsFile != "" {
		c.Corpus = excel.NewDrawReader(excel.ExcelConfig{
			FilePath: cfg.Data.DrawsFile,
			Sheet:    cfg.Data.DrawsSheet,
			Enabled:  true,
		})
	}
	return c, nil
}

// Connect opens the database, runs migrations and attaches the repositories.
// It is a no-op when no DATABASE_URL is configured.
func (c *Container) Connect(ctx context.Context) error {
	if !c.Config.Database.Enabled() {
		return nil
	}
	db, err := sqlx.ConnectContext(ctx, "postgres", c.Config.Database.URL)
	if err != nil {
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to connect to database"))
	}
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return errors.Wrap(err, "database migration failed")
	}
	return c.InitWithDatabase(db)
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	c.DB = db
	c.Draws = postgres.NewDrawRepository(db)
	c.Runs = postgres.NewRunRepository(db)
	if c.Corpus == nil {
		c.Corpus = c.Draws
	}
	c.Logger.With("Container").Debug("Database repositories attached")
	return nil
}

// Services builds the statistics and generation services
func (c *Container) Services() error {
	if c.Corpus == nil {
		return errors.ConfigInvalid("no draw history configured: set DRAWS_FILE or DATABASE_URL")
	}
	c.Stats = app.NewStatsService(c.Corpus, c.Logger)
	c.Generation = app.NewGenerationService(c.Corpus, c.Runs, c.RNG, c.Logger)
	return nil
}

// Persistent reports whether generated runs can be stored
func (c *Container) Persistent() bool {
	return c.Runs != nil
}

// Close releases the database connection
func (c *Container) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
