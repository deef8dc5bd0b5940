package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/arl/statsviz"
	"github.com/charmbracelet/log"
	"github.com/plus3/tetrodeck/config"
	"github.com/plus3/tetrodeck/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	configFile     string
	duration       time.Duration
	sessions       int
	seed           uint64
	metricsAddr    string
	gcPauseMetrics bool
	logLevel       string
)

var rootCmd = &cobra.Command{
	Use:   "tetrodeck-sim",
	Short: "Run bot sessions headless and report how they did",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("duration") {
			cfg.Sim.Duration = duration
		}
		if flags.Changed("sessions") {
			cfg.Sim.Sessions = sessions
		}
		if flags.Changed("seed") {
			cfg.Seed = seed
		}
		if flags.Changed("metrics-addr") {
			cfg.Sim.MetricsAddr = metricsAddr
		}
		if flags.Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := logging.New(os.Stderr, "sim", cfg.Log.Level)
		if cfg.Sim.MetricsAddr != "" {
			stop, err := serveMetrics(cfg.Sim.MetricsAddr, logger)
			if err != nil {
				return err
			}
			defer stop()
		}

		report, err := simulate(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		report.GCPauseMetrics = gcPauseMetrics

		fmt.Println("\n--- Simulation Report ---")
		if err := report.Generate(os.Stdout); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
		fmt.Println("--- End of Report ---")
		return nil
	},
}

// simulate runs cfg.Sim.Sessions bot sessions in parallel for
// cfg.Sim.Duration.
func simulate(ctx context.Context, cfg config.Config, logger *log.Logger) (*Report, error) {
	base := cfg.Seed
	if base == 0 {
		base = uint64(time.Now().UnixNano())
	}
	report := &Report{
		Duration: cfg.Sim.Duration,
		Sessions: cfg.Sim.Sessions,
		Seed:     base,
		Results:  make([]SessionResult, cfg.Sim.Sessions),
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", "sessions", cfg.Sim.Sessions, "duration", cfg.Sim.Duration, "seed", base)
	ctx, cancel := context.WithTimeout(ctx, cfg.Sim.Duration)
	defer cancel()

	start := time.Now()
	dt := cfg.FrameInterval().Seconds()
	g, ctx := errgroup.WithContext(ctx)
	for i := range cfg.Sim.Sessions {
		g.Go(func() error {
			report.Results[i] = runSession(ctx, logger, base+uint64(i), cfg.StartingMoney, dt, 0)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	logger.Info("simulation finished", "elapsed", report.TotalTime)
	return report, nil
}

// serveMetrics exposes the statsviz dashboard on addr until stop is called.
func serveMetrics(addr string, logger *log.Logger) (stop func(), err error) {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return nil, err
	}
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "err", err)
		}
	}()
	logger.Info("metrics", "url", "http://"+addr+"/debug/statsviz/")
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	f.DurationVar(&duration, "duration", 10*time.Second, "how long to run")
	f.IntVar(&sessions, "sessions", 8, "bot sessions to run in parallel")
	f.Uint64Var(&seed, "seed", 0, "base seed; session i uses seed+i")
	f.StringVar(&metricsAddr, "metrics-addr", "", "serve statsviz on this address, e.g. localhost:6060")
	f.BoolVar(&gcPauseMetrics, "gc-pause-metrics", false, "include GC pause totals in the report")
	f.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("exit", "err", err)
		os.Exit(1)
	}
}
