// Package cmd provides the CLI commands for the gdpdash server.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gdpdash/internal/api"
	"gdpdash/internal/config"
	"gdpdash/internal/engine"
	"gdpdash/internal/logger"
	"gdpdash/internal/metrics"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Version information, set from main before Execute.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "gdpdash",
	Short: "GDP per capita graphing dashboard",
	Long: `gdpdash loads a wide-format GDP per capita CSV once at startup and
serves an interactive dashboard that charts the average GDP per capita
of the selected countries over a year range.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	addServeFlags(rootCmd.Flags())
}

func addServeFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Path to a YAML config file")
	flags.String("data", "", "Path to the GDP per capita CSV (overrides data.path)")
	flags.String("addr", "", "Listen address (overrides server.address)")
	flags.Bool("debug", false, "Enable debug logging and echo debug mode")
}

// Execute runs the root command. Called once by main.main().
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
	rootCmd.SetVersionTemplate("gdpdash {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the configuration with flags layered over file and env.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewLoader()
	bindings := map[string]string{
		"data.path":      "data",
		"server.address": "addr",
		"server.debug":   "debug",
	}
	for key, name := range bindings {
		if err := loader.BindFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, err
		}
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Server.Debug {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog)

	table, err := engine.LoadTable(cfg.Data.Path, log)
	if err != nil {
		zapLog.Fatal("failed to load GDP table", zap.String("path", cfg.Data.Path), zap.Error(err))
	}
	defer table.Release()

	metrics.TableCountries.Set(float64(len(table.Countries())))
	metrics.TableYears.Set(float64(table.NumYears()))

	h, err := api.NewHandler(table, cfg.Dashboard, log)
	if err != nil {
		return err
	}
	e := api.NewServer(h, log, cfg.Server.Debug)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zapLog.Info("dashboard listening",
			zap.String("app", cfg.App.Name),
			zap.String("environment", cfg.App.Environment),
			zap.String("address", cfg.Server.Address),
			zap.Int("countries", len(table.Countries())),
			zap.Int("minYear", table.MinYear()),
			zap.Int("maxYear", table.MaxYear()),
		)
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zapLog.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
