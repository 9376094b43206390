package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ogurasousui/employee-registry/internal/adapters/console"
	"github.com/ogurasousui/employee-registry/internal/adapters/repository"
	"github.com/ogurasousui/employee-registry/internal/core/employee"
	"github.com/ogurasousui/employee-registry/internal/platform/config"
	"github.com/ogurasousui/employee-registry/internal/platform/db"
	"github.com/ogurasousui/employee-registry/internal/platform/logging"
	"github.com/ogurasousui/employee-registry/internal/platform/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "employees",
		Short: "Insert one employee and print the employees table",
		Long: `Connects to the configured database, creates the employees table when it
is missing, asks for one employee on standard input, inserts it and prints
every stored employee.

Connection settings come from the YAML file given by --config (or CONFIG_PATH),
then .env, then DB_* environment variables.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRunner(cmd, opts, true, func(ctx context.Context, r *session.Runner) error {
				return r.Run(ctx)
			})
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("CONFIG_PATH"), "path to config file (defaults to CONFIG_PATH env)")

	root.AddCommand(newListCmd(opts))
	root.AddCommand(newMigrateCmd(opts))
	return root
}

func loadConfig(opts *rootOptions) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// withRunner は設定とロガーを用意して Runner を組み立て、fn を実行します。
func withRunner(cmd *cobra.Command, opts *rootOptions, interactive bool, fn func(context.Context, *session.Runner) error) error {
	cfg, logger, err := loadConfig(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	open := func(ctx context.Context) (employee.Store, error) {
		return repository.Open(ctx, cfg.Database, logger)
	}

	var prompter session.Prompter
	if interactive {
		prompter = console.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	checkDriver := func() error {
		_, err := db.ResolveDriver(cfg.Database.Driver)
		return err
	}

	runner := session.New(open, prompter, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger.With(
		zap.String("driver", cfg.Database.Driver),
		zap.String("endpoint", cfg.Database.Endpoint()),
	), session.WithDriverCheck(checkDriver))
	return fn(cmd.Context(), runner)
}
