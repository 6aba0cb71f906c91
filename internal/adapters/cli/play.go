package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/oseiasoliveira3390-bot/Truck-life/internal/adapters/metrics"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/adapters/persistence"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/common"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/application/game/career"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/game"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/ledger"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/domain/shared"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/infrastructure/config"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/infrastructure/database"
	"github.com/oseiasoliveira3390-bot/Truck-life/internal/infrastructure/logging"
)

// NewPlayCommand creates the interactive play command
func NewPlayCommand() *cobra.Command {
	var (
		seed        int64
		name        string
		deductCosts bool
		noLedger    bool
		withMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start a new career in the interactive console",
		Long: `Start a new career and drive it from an interactive console.

Driving progresses in real time once a trip is started; loan
installments are billed on a fixed interval. Every money movement is
booked in the ledger database so it can be reviewed later with
'trucklife ledger'.

Examples:
  trucklife play
  trucklife play --seed 7 --deduct-costs
  trucklife play --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cmd.Flags().Changed("seed") {
				cfg.Game.Seed = seed
			}
			if name != "" {
				cfg.Game.PlayerName = name
			}
			if deductCosts {
				cfg.Game.DeductTripCosts = true
			}
			if withMetrics {
				cfg.Metrics.Enabled = true
			}
			if verbose {
				cfg.Logging.Level = "debug"
			}

			return runPlay(cmd, cfg, !noLedger)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for the job board (default: from config or clock)")
	cmd.Flags().StringVar(&name, "name", "", "Driver name")
	cmd.Flags().BoolVar(&deductCosts, "deduct-costs", false, "Deduct fuel and maintenance from delivery payouts")
	cmd.Flags().BoolVar(&noLedger, "no-ledger", false, "Do not book transactions in the ledger database")
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "Expose Prometheus metrics while playing")

	return cmd
}

func runPlay(cmd *cobra.Command, cfg *config.Config, withLedger bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, closer, err := logging.NewLogger(cfg.Logging, "trucklife")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer closer.Close()
	ctx = common.WithLogger(ctx, logging.NewSlogAdapter(logger))

	var repo ledger.TransactionRepository
	if withLedger {
		db, err := database.Open(&cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close(db)
		repo = persistence.NewGormTransactionRepository(db)
	}

	middlewares := []common.Middleware{common.LoggingMiddleware(requestName)}
	var commandMetrics *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		defer metrics.Reset()
		commandMetrics = metrics.NewCommandMetricsCollector()
		if err := commandMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register command metrics: %w", err)
		}
		middlewares = append(middlewares, metrics.PrometheusMiddleware(commandMetrics))
	}

	c, err := career.New(repo, career.Options{
		Rules:              rulesFromConfig(cfg.Game),
		Random:             shared.NewSeededRandom(seedFromConfig(cfg.Game)),
		DriveTick:          cfg.Game.DriveTick,
		BillingInterval:    cfg.Game.BillingInterval,
		JobRefreshInterval: cfg.Game.JobRefreshInterval,
		Middlewares:        middlewares,
	})
	if err != nil {
		return fmt.Errorf("failed to start career: %w", err)
	}
	c.Start(ctx)
	defer c.Stop()

	if cfg.Metrics.Enabled {
		shutdown, err := startMetrics(ctx, cfg.Metrics, c)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\nSession %s. Type 'help' for commands.\n", game.WelcomeMessage, c.Session.ID())
	return NewConsole(c.Mediator, c.Session.ID(), out).Run(ctx, cmd.InOrStdin())
}

// startMetrics registers the career collectors and serves the registry
func startMetrics(ctx context.Context, cfg config.MetricsConfig, c *career.Career) (func(), error) {
	careerCollector := metrics.NewCareerMetricsCollector(c.Mediator)
	if err := careerCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register career metrics: %w", err)
	}
	financialCollector := metrics.NewFinancialMetricsCollector(c.Mediator, c.Session.ID())
	if err := financialCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register financial metrics: %w", err)
	}
	metrics.SetGlobalCareerCollector(careerCollector)
	metrics.SetGlobalFinancialCollector(financialCollector)
	careerCollector.Start(ctx)
	financialCollector.Start(ctx)

	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger := common.LoggerFromContext(ctx)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log(common.LevelError, "Metrics server stopped", map[string]interface{}{"error": err.Error()})
		}
	}()
	logger.Log(common.LevelInfo, "Serving metrics", map[string]interface{}{"addr": server.Addr, "path": cfg.Path})

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
		careerCollector.Stop()
		financialCollector.Stop()
	}, nil
}

func rulesFromConfig(cfg config.GameConfig) game.Rules {
	return game.Rules{
		PlayerName:      cfg.PlayerName,
		StartingMoney:   cfg.StartingMoney,
		JobPoolSize:     cfg.JobPoolSize,
		ProgressStep:    cfg.ProgressStep,
		LogCapacity:     cfg.LogCapacity,
		DeductTripCosts: cfg.DeductTripCosts,
		Weather:         cfg.Weather,
	}
}

func seedFromConfig(cfg config.GameConfig) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

func requestName(request common.Request) string {
	return fmt.Sprintf("%T", request)
}
