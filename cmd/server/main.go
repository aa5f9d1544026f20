package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/you/staticman-prhook/internal/config"
	"github.com/you/staticman-prhook/internal/dedupe"
	"github.com/you/staticman-prhook/internal/infra"
	"github.com/you/staticman-prhook/internal/merge"
	"github.com/you/staticman-prhook/internal/repository"
	ghrepo "github.com/you/staticman-prhook/internal/repository/github"
	pgrepo "github.com/you/staticman-prhook/internal/repository/pg"
	"github.com/you/staticman-prhook/internal/telemetry"
	transport "github.com/you/staticman-prhook/internal/transport/http"
	uc "github.com/you/staticman-prhook/internal/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := infra.NewProductionLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()
	logger := infra.NewZapLogger(zl)

	ctx := context.Background()
	gh, err := ghrepo.NewClient(ctx, cfg.GitHubToken, cfg.GitHubBaseURL)
	if err != nil {
		log.Fatalf("github client: %v", err)
	}
	host := ghrepo.NewHost(gh)

	producer, err := merge.NewProducer(cfg.KafkaBrokers)
	if err != nil {
		log.Fatalf("kafka producer: %v", err)
	}
	defer producer.Close()
	defer producer.Flush(5000)
	go merge.LogEvents(producer, logger)
	processor := merge.NewKafkaProcessor(producer, cfg.KafkaTopic)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	sink := telemetry.NewPrometheus(reg)

	var deliveries repository.DeliveryLog
	if cfg.DatabaseURL != "" {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		pool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		defer pool.Close()
		deliveries = pgrepo.NewPGRepo(pool)
	}

	var dd dedupe.Store
	if cfg.RedisAddr != "" {
		rdb, err := dedupe.NewRedis(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		defer rdb.Close()
		dd = dedupe.NewRedisStore(rdb, cfg.DedupeTTL)
	}

	reconciler := uc.NewReconciler(host, processor, sink, logger)
	handlers := transport.NewHandlers(reconciler, deliveries, dd, cfg.WebhookSecret, logger)
	router := transport.NewRouter(handlers, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Handler:      router,
		Addr:         ":" + cfg.Port,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Infof("starting server on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Errorf("server error: %v", err)
	}
}
