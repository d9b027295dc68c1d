package main

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/config"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/logger"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

type rootOptions struct {
	path     string
	logLevel string
	log      *zap.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the storefront PostgreSQL schema",
		Long: `Apply and inspect schema migrations.

Without --path the migrations compiled into the binary are used. Connection
settings come from the SHOP_DATABASE_* environment variables or config.toml.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(&logger.Config{
				Level:      opts.logLevel,
				Format:     "console",
				Output:     "stdout",
				TimeFormat: "2006-01-02 15:04:05",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = logger.Sync(opts.log)
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.path, "path", "", "migrations directory (default: embedded)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		withMigrator(opts, &cobra.Command{Use: "up", Short: "Apply all pending migrations", Args: cobra.NoArgs},
			func(m *migration.Migrator, _ []string) error { return m.Up() }),
		withMigrator(opts, &cobra.Command{Use: "down", Short: "Roll back all migrations", Args: cobra.NoArgs},
			func(m *migration.Migrator, _ []string) error { return m.Down() }),
		withMigrator(opts, &cobra.Command{Use: "step <n>", Short: "Apply n migrations (negative rolls back)", Args: cobra.ExactArgs(1)},
			func(m *migration.Migrator, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				return m.Steps(n)
			}),
		withMigrator(opts, &cobra.Command{Use: "goto <version>", Short: "Migrate to a specific version", Args: cobra.ExactArgs(1)},
			func(m *migration.Migrator, args []string) error {
				version, err := strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.GoTo(uint(version))
			}),
		withMigrator(opts, &cobra.Command{Use: "force <version>", Short: "Force the recorded version after a failed run", Args: cobra.ExactArgs(1)},
			func(m *migration.Migrator, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				opts.log.Warn("Forcing migration version", zap.Int("version", version))
				return m.Force(version)
			}),
		withMigrator(opts, &cobra.Command{Use: "version", Short: "Show the current migration version", Args: cobra.NoArgs},
			func(m *migration.Migrator, _ []string) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if version == 0 {
					opts.log.Info("No migrations applied")
					return nil
				}
				opts.log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
				return nil
			}),
		newCreateCommand(opts),
		newListCommand(opts),
	)
	return root
}

// withMigrator connects to the configured database and runs fn against a migrator
func withMigrator(opts *rootOptions, cmd *cobra.Command, fn func(m *migration.Migrator, args []string) error) *cobra.Command {
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if cfg.Database.Driver == "sqlite" {
			return fmt.Errorf("sqlite schemas are created on server start; migrations target postgres")
		}

		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(cmd.Context()); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		m, err := migration.New(db, opts.path, opts.log)
		if err != nil {
			return err
		}
		defer m.Close()

		opts.log.Info("Running migration command", zap.String("command", cmd.Name()))
		return fn(m, args)
	}
	return cmd
}

func migrationsDir(opts *rootOptions) string {
	if opts.path != "" {
		return opts.path
	}
	return defaultMigrationsDir
}

func newCreateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "create <name> [description]",
		Short:   "Create a new up/down migration pair",
		Example: `  migrate create add_orders_placed_index "Index orders by placed date"`,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := ""
			if len(args) > 1 {
				description = args[1]
			}
			mf, err := migration.CreateMigration(migrationsDir(opts), args[0], description)
			if err != nil {
				return err
			}
			opts.log.Info("Migration created",
				zap.String("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath),
			)
			return nil
		},
	}
}

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List migration files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := migration.ListMigrations(migrationsDir(opts))
			if err != nil {
				return err
			}
			if len(files) == 0 {
				opts.log.Info("No migrations found")
				return nil
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), "  -", f)
			}
			return nil
		},
	}
}
