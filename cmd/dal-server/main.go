package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/zephyr-dassouli/dal-orchestrator/internal/chain"
	"github.com/zephyr-dassouli/dal-orchestrator/internal/compute"
	"github.com/zephyr-dassouli/dal-orchestrator/internal/events"
	"github.com/zephyr-dassouli/dal-orchestrator/internal/metrics"
	"github.com/zephyr-dassouli/dal-orchestrator/internal/reconcile"
	"github.com/zephyr-dassouli/dal-orchestrator/internal/session"
	"github.com/zephyr-dassouli/dal-orchestrator/internal/transport"
)

type config struct {
	Addr             string        `long:"addr" env:"DAL_ADDR" description:"HTTP listen address" default:":8000"`
	RPCURL           string        `long:"rpc-url" env:"DAL_RPC_URL" description:"Ethereum RPC URL" default:"http://127.0.0.1:8545"`
	ContractAddress  string        `long:"contract-address" env:"DAL_CONTRACT_ADDRESS" description:"ALProject contract address" required:"true"`
	PrivateKey       string        `long:"private-key" env:"DAL_PRIVATE_KEY" description:"hex private key for vote and round transactions"`
	ChainID          int64         `long:"chain-id" env:"DAL_CHAIN_ID" description:"chain id for transaction signing" default:"1337"`
	ReadRateLimit    int           `long:"read-rate-limit" env:"DAL_READ_RATE_LIMIT" description:"contract reads per second" default:"20"`
	EngineURL        string        `long:"engine-url" env:"DAL_ENGINE_URL" description:"AL-Engine base URL" default:"http://127.0.0.1:5050"`
	FileServerURL    string        `long:"file-server-url" env:"DAL_FILE_SERVER_URL" description:"file server base URL for model artifacts"`
	EngineTimeout    time.Duration `long:"engine-timeout" env:"DAL_ENGINE_TIMEOUT" description:"timeout for iteration and training requests" default:"5m"`
	PollInterval     time.Duration `long:"poll-interval" env:"DAL_POLL_INTERVAL" description:"batch status poll interval" default:"5s"`
	EndCheckInterval time.Duration `long:"end-check-interval" env:"DAL_END_CHECK_INTERVAL" description:"project end condition check interval" default:"30s"`
	VoteWorkers      int           `long:"vote-workers" env:"DAL_VOTE_WORKERS" description:"concurrent per-sample vote reads during aggregation" default:"4"`
	FeatureCount     int           `long:"fallback-feature-count" env:"DAL_FALLBACK_FEATURE_COUNT" description:"feature count for locally generated samples" default:"4"`
	PoolSize         int           `long:"fallback-pool-size" env:"DAL_FALLBACK_POOL_SIZE" description:"unlabeled pool size for locally generated samples" default:"120"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("dal server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	gateway, err := chain.New(chain.Config{
		RPCURL:          cfg.RPCURL,
		ContractAddress: cfg.ContractAddress,
		PrivateKeyHex:   cfg.PrivateKey,
		ChainID:         cfg.ChainID,
		ReadRateLimit:   cfg.ReadRateLimit,
	}, metrics.NewChainGateway(cfg.ContractAddress), logger.Named("chain"))
	if err != nil {
		return fmt.Errorf("init chain gateway: %w", err)
	}

	engine, err := compute.NewClient(compute.Config{
		BaseURL:        cfg.EngineURL,
		FileServerURL:  cfg.FileServerURL,
		RequestTimeout: cfg.EngineTimeout,
	}, metrics.NewComputeClient(), logger.Named("compute"))
	if err != nil {
		return fmt.Errorf("init al-engine client: %w", err)
	}
	fallback := compute.NewFallbackGenerator(cfg.FeatureCount, cfg.PoolSize, logger.Named("fallback"))

	bridge, err := events.New(gateway, metrics.NewEventBridge(), logger.Named("events"))
	if err != nil {
		return fmt.Errorf("init event bridge: %w", err)
	}
	bridge.Start(ctx)
	defer bridge.Close()

	store, err := session.NewStore(
		gateway,
		engine,
		fallback,
		func() (session.Reconciler, error) {
			return reconcile.New(gateway, metrics.NewReconciler(), logger.Named("reconcile"))
		},
		bridge,
		metrics.NewOrchestrator(),
		session.Config{
			PollInterval:     cfg.PollInterval,
			EndCheckInterval: cfg.EndCheckInterval,
			VoteWorkers:      cfg.VoteWorkers,
		},
		logger.Named("session"),
	)
	if err != nil {
		return fmt.Errorf("init session store: %w", err)
	}
	defer store.Close()

	api, err := transport.NewAPI(store, engine, bridge, logger.Named("transport"))
	if err != nil {
		return fmt.Errorf("init api: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	api.Register(e)

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           cors.Default().Handler(e),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", cfg.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
