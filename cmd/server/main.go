package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "portfolio-resume/internal/adapter/http"
	repo "portfolio-resume/internal/adapter/repository"
	"portfolio-resume/internal/auth"
	"portfolio-resume/internal/config"
	"portfolio-resume/internal/infrastructure/migration"
	"portfolio-resume/internal/site"
	"portfolio-resume/internal/usecase"
	"portfolio-resume/internal/wizard"
	infra "portfolio-resume/pkg/infrastructure"

	"github.com/jackc/pgx/v4/pgxpool"
)

func main() {
	cfg := config.Load()
	log := cfg.NewLogger(os.Stdout)
	slog.SetDefault(log)

	ctx := context.Background()

	// infra setup
	var pool *pgxpool.Pool
	if p, err := infra.NewPool(ctx, cfg.DatabaseURL); err != nil {
		if !errors.Is(err, infra.ErrNoDatabase) {
			log.Warn("database not available, export history disabled", "error", err)
		}
	} else {
		pool = p
		defer pool.Close()
		if err := migration.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	var drafts wizard.Store = wizard.NewMemoryStore()
	if cfg.RedisAddr != "" {
		if rc, err := infra.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword); err != nil {
			log.Warn("redis not available, keeping drafts in memory", "error", err)
		} else {
			defer rc.Close()
			drafts = wizard.NewRedisStore(rc, cfg.DraftTTL)
		}
	}

	var artifacts usecase.ArtifactStore = infra.NewLocalArtifactStore(cfg.ExportDir)
	if cfg.S3Bucket != "" {
		if s, err := infra.NewS3ArtifactStoreFromEnv(ctx, cfg.AWSRegion, cfg.S3Bucket); err != nil {
			log.Warn("s3 not available, storing exports locally", "error", err)
		} else {
			artifacts = s
		}
	}

	exportsRepo := repo.NewExportsRepo(pool)
	exporter := usecase.NewExporter(
		infra.NewChromedpRenderer(cfg.ChromePath),
		exportsRepo,
		usecase.WithArtifactStore(artifacts),
		usecase.WithThumbnailer(infra.NewFitzThumbnailer()),
		usecase.WithLogger(log),
	)

	content, err := site.LoadContent(cfg.SiteContent)
	if err != nil {
		log.Error("failed to load site content", "error", err)
		os.Exit(1)
	}
	pages, err := site.NewPages(content)
	if err != nil {
		log.Error("failed to parse pages", "error", err)
		os.Exit(1)
	}

	authSvc := auth.NewService(auth.Config{
		GoogleClientID:     cfg.GoogleClientID,
		GoogleClientSecret: cfg.GoogleClientSecret,
		BackendURL:         cfg.BackendURL,
		Secret:             cfg.AuthSecret,
	}, log)

	h := httpadapter.NewHandler(httpadapter.Deps{
		Drafts:    drafts,
		Exporter:  exporter,
		Dashboard: usecase.NewDashboardService(exportsRepo),
		Contact:   usecase.NewContactService(repo.NewContactsRepo(pool), log),
		Pages:     pages,
		Auth:      authSvc,
		Log:       log,
	})
	app := httpadapter.NewApp(h, log)

	go func() {
		log.Info("server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	log.Info("server exited")
}
