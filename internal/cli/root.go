// Package cli implements tastectl, the command-line front end for importing
// snapshots and printing analytics without running the HTTP server.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tlhtlh2211/datavis-project2/internal/app"
	"github.com/tlhtlh2211/datavis-project2/internal/config"
	"github.com/tlhtlh2211/datavis-project2/internal/logger"
)

// env holds what every subcommand needs once the root has loaded settings.
type env struct {
	v   *viper.Viper
	svc *app.Service
	log *zap.Logger

	configFile string
	envFile    string
}

// NewRootCommand builds the tastectl command tree. Flags are bound to a fresh
// viper instance, so commands built here do not share state.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&env{v: viper.New()})
}

func newRootCommand(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "tastectl",
		Short:         "Imports Spotify listening snapshots and prints taste analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&e.configFile, "config", "", "config file (yaml, json or toml)")
	flags.StringVar(&e.envFile, "env-file", ".env", "dotenv file loaded before the environment")
	flags.String("storage-driver", "", "snapshot store: file, sqlite, postgres or minio")
	flags.String("data-dir", "", "directory of the file store")
	flags.String("sqlite-path", "", "path of the SQLite database")
	flags.String("postgres-dsn", "", "PostgreSQL connection string")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.Int("workers", 0, "concurrent audio-feature batches")

	bindFlags(e.v, flags, map[string]string{
		"storage-driver": config.KeyStorageDriver,
		"data-dir":       config.KeyDataDir,
		"sqlite-path":    config.KeySQLitePath,
		"postgres-dsn":   config.KeyPostgresDSN,
		"log-level":      config.KeyLogLevel,
		"workers":        config.KeyFeatureWorkers,
	})

	root.AddCommand(newImportCommand(e), newAnalyzeCommand(e))
	return root
}

// Execute runs tastectl and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bindFlags maps each flag to its setting key. Viper only uses a flag value
// when the flag was set on the command line.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("cli: bind flag %s: %v", name, err))
		}
	}
}

// withService opens the configured service for the duration of run and
// closes it whether or not run succeeds.
func (e *env) withService(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := e.open(cmd); err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, e.close())
		}()
		return run(cmd, args)
	}
}

func (e *env) open(cmd *cobra.Command) error {
	cfg, err := config.Load(e.v, config.Options{EnvFile: e.envFile, ConfigFile: e.configFile})
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Environment: cfg.App.Environment, Level: cfg.App.LogLevel})
	if err != nil {
		return err
	}
	e.log = log.Named("tastectl")

	svc, err := app.Build(cmd.Context(), cfg, e.log)
	if err != nil {
		return err
	}
	e.svc = svc
	return nil
}

func (e *env) close() error {
	if e.log != nil {
		_ = e.log.Sync()
	}
	if e.svc == nil {
		return nil
	}
	err := e.svc.Close()
	e.svc = nil
	return err
}
