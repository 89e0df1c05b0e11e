// Package demo implements the "reflector demo" command: a synthetic game
// loop serving mock scene and profiling data for inspector front-end
// development.
package demo

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reflector-dev/reflector-go/internal/config"
	"github.com/reflector-dev/reflector-go/internal/logging"
	"github.com/reflector-dev/reflector-go/internal/mockdata"
	"github.com/reflector-dev/reflector-go/pkg/profiler"
	"github.com/reflector-dev/reflector-go/pkg/reflector"
)

// NewDemoCmd creates the demo command.
func NewDemoCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		logLevel   string
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a simulated game loop serving mock inspector data",
		Long: `Runs a synthetic 60Hz game loop with a fixed mock scene and serves the
inspector API. Intended for developing the inspector UI without embedding
the library in a real application.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			// Flags take precedence over file and env settings.
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			return run(cmd, cfg, seed)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	cmd.Flags().StringVar(&addr, "addr", config.Default().Addr, "Inspector API listen address")
	cmd.Flags().StringVar(&logLevel, "log-level", config.Default().LogLevel, "Log level (debug, info, warn, error)")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Seed for the simulated frame load")

	return cmd
}

func run(cmd *cobra.Command, cfg config.Config, seed int64) error {
	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	host := mockdata.New(logger, seed)

	server, err := reflector.New(reflector.Config{
		Addr:     cfg.Addr,
		Perf:     host,
		Scene:    host,
		Entities: host,
		Profiler: profiler.Config{
			RingSize:            cfg.Profiler.RingSize,
			MaxZonesPerFrame:    cfg.Profiler.MaxZonesPerFrame,
			MinRecordedDuration: cfg.Profiler.MinRecordedDuration(),
			HistoryWindow:       cfg.Profiler.HistoryWindow,
		},
		StreamInterval: cfg.StreamInterval(),
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	if err := server.Start(); err != nil {
		return err
	}
	defer func() {
		if err := server.Stop(); err != nil {
			logger.Error().Err(err).Msg("Failed to stop server")
		}
	}()

	logger.Info().
		Str("addr", server.Addr()).
		Int64("seed", seed).
		Msg("Demo running, press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	host.Run(ctx, server.Profiler())
	return nil
}
