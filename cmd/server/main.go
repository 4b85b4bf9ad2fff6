package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/layout"
	"resume-builder/internal/parser"
	"resume-builder/internal/preview"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"
	"resume-builder/pkg/logger"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	_ "go.uber.org/automaxprocs"
)

func main() {
	configPath := flag.StringP("config", "c", "", "path to a YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("error loading .env file", "error", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	logger.Setup(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// infra setup
	var draftsRepo usecase.DraftsRepo = repo.NewMemoryDraftsRepo()
	pool, err := infra.NewDraftsPool(ctx, cfg.Database.URL)
	switch {
	case err == nil:
		defer pool.Close()
		if err := migration.RunMigrations(ctx, pool); err != nil {
			slog.Error("running migrations", "error", err)
			os.Exit(1)
		}
		draftsRepo = repo.NewDraftsRepo(pool)
	case errors.Is(err, infra.ErrNoDatabaseURL):
		slog.Info("no database configured, drafts are kept in memory")
	default:
		slog.Warn("drafts database not available, drafts are kept in memory", "error", err)
	}

	pv, err := preview.NewRenderer()
	if err != nil {
		slog.Error("loading preview templates", "error", err)
		os.Exit(1)
	}

	var browser usecase.Renderer
	if cfg.Browser.Enabled {
		browser = infra.NewChromedpRenderer(cfg.Browser.ChromePath, cfg.BrowserTimeout())
	}

	var parseClient *parser.Client
	if cfg.Parser.URL != "" {
		parseClient = parser.NewClient(cfg.Parser.URL, cfg.Parser.APIKey, cfg.ParserTimeout())
	}
	parseSvc := parser.New(parser.Config{MaxBytes: cfg.MaxUploadBytes()}, parseClient)

	h := httpadapter.NewHandler(
		usecase.NewExporter(layout.NewEngine(), pv, browser),
		usecase.NewDrafts(draftsRepo),
		parseSvc,
	)
	app := httpadapter.NewApp(h, httpadapter.Options{
		AllowOrigins: cfg.Server.AllowOrigins,
		BodyLimit:    cfg.Server.BodyLimitMB << 20,
	})

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", cfg.Server.Port,
			"browser_print", browser != nil, "remote_parser", parseSvc.Remote(), "postgres", pool != nil)
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout()); err != nil {
			slog.Error("shutdown", "error", err)
		}
	}
}
