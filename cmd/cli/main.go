package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pflegeteam/shiftplan/cmd/cli/commands"
	"github.com/pflegeteam/shiftplan/internal/config"
	"github.com/pflegeteam/shiftplan/pkg/postgres"
	"github.com/pflegeteam/shiftplan/pkg/utils/logging"
)

var (
	env      string
	app      *commands.AppContext
	database *postgres.DB
	stop     context.CancelFunc
)

func main() {
	app = &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "shiftplan",
		Short: "Shift plan CLI - Generate and manage monthly care shift plans",
		Long:  `A CLI tool for generating, validating, publishing and serving monthly shift plans for care teams.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			shutdown()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GeneratePlanCmd(app))
	rootCmd.AddCommand(commands.ViewPlanCmd(app))
	rootCmd.AddCommand(commands.FinalizePlanCmd(app))
	rootCmd.AddCommand(commands.ListEmployeesCmd(app))
	rootCmd.AddCommand(commands.PublishPlanCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		shutdown()
		os.Exit(1)
	}
}

// initApp loads .env files, then sets up logger, config and database
func initApp() error {
	var err error

	if err := loadEnvFiles(env); err != nil {
		return err
	}

	app.Env = env
	app.Ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Initialize logger
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.Int("closed_days", len(app.Cfg.ClosedDays)),
		zap.String("http_addr", app.Cfg.HTTPAddr))

	// Connect to database
	app.Logger.Info("Connecting to database")
	database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Database = database
	app.Migrator = database
	app.Logger.Info("Database initialized successfully")

	return nil
}

// loadEnvFiles loads .env.<env> and then .env, without overriding variables already set
func loadEnvFiles(env string) error {
	for _, name := range []string{".env." + env, ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

func shutdown() {
	if database != nil {
		database.Close()
		database = nil
	}
	if stop != nil {
		stop()
	}
	if app != nil && app.Logger != nil {
		app.Logger.Sync()
	}
}
