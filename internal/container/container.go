package container

import (
	"context"
	"fmt"
	"time"

	"cargahoraria/adapters/excel"
	"cargahoraria/adapters/postgres"
	"cargahoraria/adapters/sftpclient"
	"cargahoraria/app"
	"cargahoraria/internal/config"
	"cargahoraria/internal/migration"
	"cargahoraria/internal/roster"
	"cargahoraria/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger zerolog.Logger

	// Infrastructure
	DB *sqlx.DB

	// Adapters
	Reader    *excel.WorkbookReader
	Store     ports.CourseRepository
	Publisher ports.Publisher

	// Services
	Schedules *app.ScheduleService
	Rosters   *app.RosterService
}

// New wires the workbook reader and services. The database and SFTP
// publisher are only set up when configured.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := cfg.RequireWorkbook(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger}

	if cfg.Database.URL != "" {
		if err := c.initDatabase(ctx); err != nil {
			return nil, err
		}
	}

	if cfg.SFTP.Host != "" {
		if err := cfg.RequireSFTP(); err != nil {
			c.Close()
			return nil, err
		}
		c.Publisher = sftpclient.NewPublisher(sftpclient.Config{
			Host:                  cfg.SFTP.Host,
			Port:                  cfg.SFTP.Port,
			User:                  cfg.SFTP.User,
			Password:              cfg.SFTP.Password,
			RemoteDir:             cfg.SFTP.RemoteDir,
			InsecureIgnoreHostKey: cfg.SFTP.InsecureIgnoreHostKey,
		}, logger.With().Str("component", "sftp").Logger())
	}

	c.Reader = excel.NewWorkbookReader(cfg.Workbook.Path, cfg.Workbook.HeaderRow, logger)
	c.Schedules = app.NewScheduleService(c.Reader, c.Store, logger)

	exporter := roster.NewExporter(roster.Options{
		Template:  cfg.Roster.Template,
		OutputDir: cfg.Roster.OutputDir,
		Holidays:  cfg.Roster.Holidays,
		Workers:   cfg.Roster.Workers,
	}, logger.With().Str("component", "roster").Logger())
	c.Rosters = app.NewRosterService(c.Schedules, exporter, c.Publisher, cfg.Roster.EnrollmentDir, logger)

	return c, nil
}

// initDatabase connects, migrates and builds the course store
func (c *Container) initDatabase(ctx context.Context) error {
	db, err := Connect(ctx, c.Config.Database.URL)
	if err != nil {
		return err
	}

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.DB = db
	c.Store = postgres.NewCourseRepository(db)
	c.Logger.Info().Str("schema_version", runner.Version()).Msg("course store ready")
	return nil
}

// Connect opens and pings a Postgres connection pool
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Close releases the database connection, if any
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
