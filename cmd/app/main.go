// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"

	"content-studio/internal/config"
	"content-studio/internal/domain/ports/adapter"
	aiAdapters "content-studio/internal/infra/adapters/ai"
	"content-studio/internal/infra/adapters/instagram"
	"content-studio/internal/infra/adapters/mail"
	pg "content-studio/internal/infra/db/postgres"
	"content-studio/internal/infra/logging"
	"content-studio/internal/infra/metrics"
	"content-studio/internal/infra/prompts"
	red "content-studio/internal/infra/redis"
	"content-studio/internal/infra/sched"
	"content-studio/internal/infra/storage"
	"content-studio/internal/infra/web"
	"content-studio/internal/infra/worker"
	"content-studio/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	// .env is optional; real deployments inject environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Postgres ----
	pool := pg.MustConnectPostgres(cfg.Database.URL)
	defer pool.Close()
	txManager := pg.NewTxManager(pool)
	go reportPoolStats(ctx, pool)

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()

	// ---- Repositories ----
	postRepo := pg.NewPostgresScheduledPostRepo(pool)
	tagRepo := pg.NewTagRepoCacheDecorator(pg.NewPostgresTagRepo(pool), redisClient, cfg.Redis.TTL)
	publishedRepo := pg.NewPostgresPublishedPostRepo(pool)
	promptStore := prompts.NewFileStore(cfg.Prompts.Dir, cfg.Prompts.AutoCommit, cfg.Prompts.Push, logger)

	// ---- Object storage ----
	store, err := storage.NewS3Store(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("object storage")
	}

	// ---- Provider adapters ----
	veo, err := aiAdapters.NewVeoAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.VeoModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("veo adapter")
	}
	imagen, err := aiAdapters.NewImagenAdapter(ctx, cfg.AI.GeminiKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("imagen adapter")
	}
	captioner, err := aiAdapters.NewOpenAICaptioner(cfg.AI.OpenAIKey, cfg.AI.CaptionModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("openai captioner")
	}
	igPublisher, err := instagram.NewGraphPublisher(cfg.Instagram, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("instagram publisher")
	}
	mailer, err := mail.NewSMTPMailer(cfg.Email, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("smtp mailer")
	}

	// ---- Use cases ----
	scheduleUC := usecase.NewScheduleUseCase(
		postRepo,
		[]adapter.SocialPublisher{igPublisher},
		store,
		nil,
		cfg.Scheduler.PublishTimeout,
		logger,
	)
	videoUC := usecase.NewVideoUseCase(
		veo, nil,
		cfg.AI.VeoModel, cfg.AI.VeoAspectRatio,
		cfg.AI.VeoPollInterval, cfg.AI.VeoMaxPolls,
		cfg.AI.GeminiKey,
		logger,
	)
	tagUC := usecase.NewTagUseCase(tagRepo, logger)
	imageUC := usecase.NewImageUseCase(imagen, store, tagUC, nil, logger)
	captionUC := usecase.NewCaptionUseCase(captioner, promptStore, cfg.AI.CaptionModel, logger)
	galleryUC := usecase.NewGalleryUseCase(store, tagRepo, logger)
	emailUC := usecase.NewEmailUseCase(mailer, logger)
	publishUC := usecase.NewPublishUseCase(igPublisher, store, publishedRepo, txManager, nil, logger)

	// ---- Dispatch worker ----
	pubPool := worker.NewPool(cfg.Scheduler.Workers, logger)
	pubPool.Start(ctx)
	defer pubPool.Stop()
	dispatcher := sched.NewDispatchWorker(cfg.Scheduler.DispatchInterval, cfg.Scheduler.DispatchBatch, scheduleUC, pubPool, logger)
	go func() { _ = dispatcher.Run(ctx) }()

	// ---- HTTP server ----
	srv := web.NewServer(scheduleUC, videoUC, imageUC, captionUC, galleryUC, tagUC, emailUC, publishUC, promptStore, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}

func reportPoolStats(ctx context.Context, pool *pgxpool.Pool) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st := pool.Stat()
			metrics.SetDBPoolStats(st.TotalConns(), st.IdleConns(), st.AcquiredConns())
		}
	}
}
