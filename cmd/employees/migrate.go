package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/ogurasousui/employee-registry/assets"
	"github.com/ogurasousui/employee-registry/internal/platform/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateActions = []string{"up", "down", "drop", "version"}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var migrationsDir string

	cmd := &cobra.Command{
		Use:       "migrate [up|down|drop|version]",
		Short:     "Apply or inspect the employees schema migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrateActions,
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) > 0 {
				action = args[0]
			}

			cfg, logger, err := loadConfig(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if err := runMigration(cmd.OutOrStdout(), action, migrationsDir, cfg.Database.DSN()); err != nil {
				return fmt.Errorf("migration %s failed: %w", action, err)
			}
			logger.Info("migration finished", zap.String("action", action), zap.String("endpoint", cfg.Database.Endpoint()))
			return nil
		},
	}

	cmd.Flags().StringVar(&migrationsDir, "dir", "", "directory containing migration files (defaults to the embedded migrations)")
	return cmd
}

func newMigrate(dir, dsn string) (*migrate.Migrate, error) {
	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve path for %s: %w", dir, err)
		}
		m, err := migrate.New("file://"+filepath.ToSlash(absDir), dsn)
		if err != nil {
			return nil, fmt.Errorf("%w: create migrate instance: %w", db.ErrConnection, err)
		}
		return m, nil
	}

	src, err := embeddedSource()
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: create migrate instance: %w", db.ErrConnection, err)
	}
	return m, nil
}

func embeddedSource() (source.Driver, error) {
	d, err := iofs.New(assets.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}
	return d, nil
}

func runMigration(out io.Writer, action, dir, dsn string) error {
	if !isMigrateAction(action) {
		return fmt.Errorf("unsupported action %q", action)
	}

	m, err := newMigrate(dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	switch action {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("%w: %w", db.ErrConnection, err)
		}
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("%w: %w", db.ErrConnection, err)
		}
	case "drop":
		if err := m.Drop(); err != nil {
			return fmt.Errorf("%w: %w", db.ErrConnection, err)
		}
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				fmt.Fprintln(out, "no migration applied")
				return nil
			}
			return fmt.Errorf("%w: %w", db.ErrConnection, err)
		}
		fmt.Fprintf(out, "version=%d dirty=%t\n", version, dirty)
		return nil
	}

	fmt.Fprintf(out, "migration %s completed\n", action)
	return nil
}

func isMigrateAction(action string) bool {
	for _, a := range migrateActions {
		if a == action {
			return true
		}
	}
	return false
}
