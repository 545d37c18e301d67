package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/smart-betting-dashboard/internal/betting/budget"
	"github.com/radieske/smart-betting-dashboard/internal/betting/clock"
	"github.com/radieske/smart-betting-dashboard/internal/betting/session"
	oddscache "github.com/radieske/smart-betting-dashboard/internal/dashboard-service/cache"
	"github.com/radieske/smart-betting-dashboard/internal/dashboard-service/dispatch"
	httpapi "github.com/radieske/smart-betting-dashboard/internal/dashboard-service/http"
	"github.com/radieske/smart-betting-dashboard/internal/dashboard-service/producer"
	"github.com/radieske/smart-betting-dashboard/internal/dashboard-service/pubsub"
	"github.com/radieske/smart-betting-dashboard/internal/dashboard-service/repo"
	"github.com/radieske/smart-betting-dashboard/internal/dashboard-service/telemetry"
	"github.com/radieske/smart-betting-dashboard/internal/dashboard-service/ws"
	"github.com/radieske/smart-betting-dashboard/internal/shared/cache"
	"github.com/radieske/smart-betting-dashboard/internal/shared/config"
	"github.com/radieske/smart-betting-dashboard/internal/shared/db"
	"github.com/radieske/smart-betting-dashboard/internal/shared/kafka"
	"github.com/radieske/smart-betting-dashboard/internal/shared/logger"
	"github.com/radieske/smart-betting-dashboard/internal/shared/metrics"
)

func main() {
	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	total, err := budget.ParseBudget(cfg.TotalBudget)
	if err != nil {
		log.Fatal("invalid TOTAL_BUDGET", zap.String("value", cfg.TotalBudget), zap.Error(err))
	}

	// métricas
	m := telemetry.New(prometheus.DefaultRegisterer)

	// sessão (motor)
	sess, err := session.New(session.Config{
		TotalBudget:     total,
		AdvanceInterval: cfg.AdvanceInterval,
		NotificationTTL: cfg.NotificationTTL,
		OutboxSize:      cfg.OutboxSize,
		Source:          cfg.ServiceName,
	}, clock.Real{}, logger.Component(log, "session"), m.SessionHooks())
	if err != nil {
		log.Fatal("failed to start session", zap.Error(err))
	}
	m.ObserveBudget(sess.Budget())
	log.Info("session started", zap.String("session_id", sess.ID()), zap.String("total_budget", total.String()))

	hub := ws.NewHub(logger.Component(log, "ws"), func(*http.Request) bool { return true }, sess)
	hub.OnClients = m.OnClients

	checks := map[string]metrics.HealthFunc{}
	var sinks []dispatch.Sink

	// Postgres: trilha de auditoria (opcional)
	if cfg.PostgresDSN != "" {
		pg, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		audit := repo.NewAuditRepo(pg)
		if err := audit.Migrate(ctx); err != nil {
			log.Fatal("failed to migrate audit schema", zap.Error(err))
		}
		sinks = append(sinks, audit)
		checks["postgres"] = pg.PingContext
		log.Info("postgres connected")
	}

	// Kafka: eventos do ledger e das odds (opcional)
	if cfg.KafkaBrokers != "" {
		writer := kafka.NewWriter(cfg.KafkaBrokers)
		defer writer.Close()

		sinks = append(sinks, producer.NewKafkaPublisher(writer, cfg.TopicLedgerEvents, cfg.TopicOddsUpdates))
		checks["kafka"] = func(ctx context.Context) error { return kafka.Ping(ctx, cfg.KafkaBrokers) }
		log.Info("kafka writer ready",
			zap.String("ledger_topic", cfg.TopicLedgerEvents),
			zap.String("odds_topic", cfg.TopicOddsUpdates),
		)
	}

	// Redis: cache de odds + pub/sub de snapshots para o WebSocket.
	// Sem Redis o dispatcher entrega direto ao Hub.
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal("failed to connect redis", zap.Error(err))
		}
		defer rdb.Close()

		sinks = append(sinks,
			oddscache.New(rdb, cfg.OddsCacheTTL),
			pubsub.New(rdb, cfg.RedisPubSubChannel, sess),
		)
		if err := ws.StartRedisSubscriber(ctx, rdb, cfg.RedisPubSubChannel, hub, logger.Component(log, "ws")); err != nil {
			log.Fatal("failed to subscribe redis channel", zap.Error(err))
		}
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info("redis connected", zap.String("channel", cfg.RedisPubSubChannel))
	} else {
		sinks = append(sinks, ws.Sink{Hub: hub})
	}

	// dispatcher drena o outbox até a sessão fechar
	disp := &dispatch.Dispatcher{
		Log:         logger.Component(log, "dispatch"),
		Sinks:       sinks,
		Timeout:     2 * time.Second,
		OnDelivered: m.OnDelivered,
		OnError:     m.OnError,
	}
	dispDone := make(chan struct{})
	go func() {
		defer close(dispDone)
		_ = disp.Run(context.Background(), sess.Events())
	}()

	// timers da sessão (avanço de odds e expiração de notificação)
	go func() {
		_ = sess.Run(ctx, cfg.TickResolution)
	}()

	// sobe servidor de métricas e health
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort,
		metrics.Handler(checks, "postgres", "redis", "kafka"),
		func(err error) { log.Error("metrics server failed", zap.Error(err)) },
	)
	log.Info("metrics/health server starting", zap.String("addr", metricsSrv.Addr))

	// API REST + WebSocket
	api := &httpapi.API{Log: logger.Component(log, "http"), Engine: sess, WS: hub}
	srv := httpapi.NewServer(cfg.HTTPPort, api.Router())
	go func() {
		log.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)

	sess.Close()
	select {
	case <-dispDone:
	case <-shutdownCtx.Done():
		log.Warn("dispatcher did not drain before timeout")
	}
	log.Info("bye")
}
