package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twmb/franz-go/pkg/kadm"
	"golang.org/x/sync/errgroup"

	jwttoken "launchpad/internal/jwt_token"
	"launchpad/internal/onboarding/adapters/authapi"
	"launchpad/internal/onboarding/adapters/businessapi"
	"launchpad/internal/onboarding/adapters/upstream"
	"launchpad/internal/onboarding/handler"
	onboardingmetrics "launchpad/internal/onboarding/metrics"
	"launchpad/internal/onboarding/service"
	"launchpad/internal/onboarding/store"
	"launchpad/internal/platform/config"
	"launchpad/internal/platform/httpserver"
	"launchpad/internal/platform/logger"
	"launchpad/internal/platform/metrics"
	platformredis "launchpad/internal/platform/redis"
	"launchpad/internal/platform/tracing"
	rlconfig "launchpad/internal/ratelimit/config"
	rlmetrics "launchpad/internal/ratelimit/metrics"
	lockoutsvc "launchpad/internal/ratelimit/service/authlockout"
	lockoutstore "launchpad/internal/ratelimit/store/authlockout"
	"launchpad/pkg/platform/audit/publishers/buffered"
	kafkasink "launchpad/pkg/platform/audit/publishers/kafka"
	logsink "launchpad/pkg/platform/audit/publishers/log"
	"launchpad/pkg/platform/circuit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("launchpad stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if cfg.UsesDevSigningKey() {
		log.Warn("using the development JWT signing key; set JWT_SIGNING_KEY in production")
	}

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.New(reg)

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	g, ctx := errgroup.WithContext(ctx)

	sink, closeSink, err := auditSink(ctx, cfg.Audit, log)
	if err != nil {
		return err
	}
	defer closeSink()
	sampler := buffered.NewSampler(cfg.Audit.OpsSampleRate)
	auditPublisher := buffered.New(sink,
		buffered.WithLogger(log),
		buffered.WithMetrics(buffered.NewMetrics(reg)),
		buffered.WithSampler(sampler),
		buffered.WithCapacity(cfg.Audit.BufferSize),
		buffered.WithFlushInterval(cfg.Audit.FlushInterval),
	)
	g.Go(func() error { return auditPublisher.Run(ctx) })

	lockoutCfg := rlconfig.AuthLockoutConfig{
		Threshold:    cfg.Lockout.Threshold,
		Window:       cfg.Lockout.Window,
		LockDuration: cfg.Lockout.LockDuration,
	}.Normalize()
	var lockStore lockoutsvc.Store
	if redisClient != nil {
		lockStore = lockoutstore.NewRedis(redisClient.Client)
		log.Info("auth lockout uses redis")
	} else {
		mem := lockoutstore.New()
		lockStore = mem
		g.Go(func() error { return pruneLockouts(ctx, mem, lockoutCfg.Window, log) })
	}
	lockout, err := lockoutsvc.New(lockStore,
		lockoutsvc.WithLogger(log),
		lockoutsvc.WithAuditPublisher(auditPublisher),
		lockoutsvc.WithMetrics(rlmetrics.New(reg)),
		lockoutsvc.WithConfig(lockoutCfg),
	)
	if err != nil {
		return err
	}

	authClient := authapi.New(upstream.New("auth_api", cfg.Upstream.AuthAPIURL,
		upstream.WithTimeout(cfg.Upstream.Timeout),
		upstream.WithBreaker(circuit.New("auth_api")),
		upstream.WithObserver(httpMetrics),
		upstream.WithLogger(log),
	))
	businessClient := businessapi.New(upstream.New("business_api", cfg.Upstream.BusinessAPIURL,
		upstream.WithTimeout(cfg.Upstream.Timeout),
		upstream.WithBreaker(circuit.New("business_api")),
		upstream.WithObserver(httpMetrics),
		upstream.WithLogger(log),
	))

	onboarding, err := service.New(store.New(), authClient, businessClient,
		service.WithLogger(log),
		service.WithMetrics(onboardingmetrics.New(reg)),
		service.WithAuditPublisher(auditPublisher),
		service.WithLockout(lockout),
		service.WithRegisterRole(cfg.Upstream.RegisterRole),
	)
	if err != nil {
		return err
	}
	g.Go(func() error {
		return onboarding.RunSweeper(ctx, cfg.Session.TTL, cfg.Session.SweepInterval)
	})

	jwtValidator := jwttoken.NewJWTServiceAdapter(jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer))

	r := chi.NewRouter()
	var ping func(context.Context) error
	if redisClient != nil {
		ping = redisClient.Health
	}
	r.Get("/health", handler.Health(ping, 2*time.Second))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	handler.New(onboarding, log, httpMetrics, jwtValidator).Register(r)

	srv := httpserver.New(cfg.Server.Addr, r)
	g.Go(func() error {
		return httpserver.Run(ctx, srv, log, cfg.Server.ShutdownTimeout)
	})

	log.Info("launchpad started", "addr", cfg.Server.Addr)
	return g.Wait()
}

// auditSink selects Kafka when brokers are configured and the structured log
// otherwise.
func auditSink(ctx context.Context, cfg config.Audit, log *slog.Logger) (buffered.Sink, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Info("audit events go to the log")
		return logsink.NewSink(log), func() {}, nil
	}

	client, err := kafkasink.NewClient(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		return nil, nil, fmt.Errorf("create kafka client: %w", err)
	}
	setupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := kafkasink.EnsureTopic(setupCtx, kadm.NewClient(client), cfg.KafkaTopic, 3, 1); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("ensure audit topic: %w", err)
	}
	log.Info("audit events go to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	return kafkasink.NewSink(client, cfg.KafkaTopic), client.Close, nil
}

func pruneLockouts(ctx context.Context, s *lockoutstore.InMemoryAuthLockoutStore, window time.Duration, log *slog.Logger) error {
	ticker := time.NewTicker(window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n, err := s.Prune(ctx, time.Now(), window); err != nil {
				log.WarnContext(ctx, "auth lockout prune failed", "error", err)
			} else if n > 0 {
				log.DebugContext(ctx, "pruned auth lockout records", "count", n)
			}
		}
	}
}
