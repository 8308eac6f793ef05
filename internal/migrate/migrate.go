package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// logAdapter satisfies migrate.Logger.
type logAdapter struct {
	logger logrus.FieldLogger
}

func (l logAdapter) Printf(format string, v ...interface{}) {
	l.logger.Debugf(format, v...)
}

func (l logAdapter) Verbose() bool { return false }

// Apply runs all migrations up using the embedded migration files.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	return run(ctx, pool, nil, func(m *migrate.Migrate) error { return m.Up() })
}

// ApplyWithLogger is Apply with migration progress reported to logger.
func ApplyWithLogger(ctx context.Context, pool *pgxpool.Pool, logger logrus.FieldLogger) error {
	return run(ctx, pool, logger, func(m *migrate.Migrate) error { return m.Up() })
}

// Rollback reverts the given number of migration steps.
func Rollback(ctx context.Context, pool *pgxpool.Pool, steps int, logger logrus.FieldLogger) error {
	if steps <= 0 {
		return fmt.Errorf("rollback steps must be positive, got %d", steps)
	}
	return run(ctx, pool, logger, func(m *migrate.Migrate) error { return m.Steps(-steps) })
}

// Version reports the current schema version and whether it is dirty.
func Version(ctx context.Context, pool *pgxpool.Pool) (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := run(ctx, pool, nil, func(m *migrate.Migrate) error {
		var err error
		version, dirty, err = m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return err
	})
	return version, dirty, err
}

func run(ctx context.Context, pool *pgxpool.Pool, logger logrus.FieldLogger, step func(*migrate.Migrate) error) error {
	srcDriver, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return fmt.Errorf("init iofs: %w", err)
	}

	sqlDB, err := sql.Open("pgx", pool.Config().ConnString())
	if err != nil {
		return fmt.Errorf("open sql db: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sql db: %w", err)
	}

	dbDriver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("init db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "pgx", dbDriver)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()
	if logger != nil {
		m.Log = logAdapter{logger: logger}
	}

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("migrate: %w (hint: every migration version needs both `.up.sql` and `.down.sql`)", err)
		}
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
