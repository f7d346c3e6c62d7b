package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/markdown"
	"inkwell/internal/middleware"
	"inkwell/internal/repository/postgres"
	"inkwell/internal/service"
	"inkwell/internal/storage"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier against the identity provider's JWKS endpoint
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	pageRepo := postgres.NewPageRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Object storage for media uploads
	objectStore, err := storage.NewS3Store(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create object store: %v", err)
	}

	// Services
	folderService := service.NewFolderService(folderRepo, pageRepo, txManager, logger)
	pageService := service.NewPageService(pageRepo, folderRepo, logger)
	sidebarService := service.NewSidebarService(folderRepo, pageRepo, logger)
	mediaService := service.NewMediaService(objectStore, logger)
	exportService := service.NewExportService(folderRepo, pageRepo, logger)
	viewService := service.NewViewService(pageRepo, markdown.NewRenderer(), logger)

	// Handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	pageHandler := handler.NewPageHandler(pageService, sidebarService, logger)
	mediaHandler := handler.NewMediaHandler(mediaService, logger)
	exportHandler := handler.NewExportHandler(exportService, logger)
	viewHandler := handler.NewViewHandler(viewService, cfg.SiteTitle, logger)

	logger.Info("services initialized")

	// Router (Go 1.22+ method patterns). Protected routes are wrapped
	// individually; the public view and health check never see the
	// auth middleware.
	requireAuth := middleware.RequireAuth(jwtVerifier, logger)
	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", pageHandler.HealthCheck)

	// Page routes
	mux.Handle("GET /pages", protected(pageHandler.ListPages))
	mux.Handle("POST /publish", protected(pageHandler.Publish))
	mux.Handle("DELETE /delete-page", protected(pageHandler.DeletePage))
	mux.Handle("POST /restore-page", protected(pageHandler.RestorePage))
	mux.Handle("POST /move-page", protected(pageHandler.MovePage))
	mux.Handle("GET /sidebar", protected(pageHandler.Sidebar))

	// Folder routes
	mux.Handle("GET /folders", protected(folderHandler.ListFolders))
	mux.Handle("POST /folders", protected(folderHandler.CreateFolder))
	mux.Handle("DELETE /folders/{id}", protected(folderHandler.DeleteFolder))
	mux.Handle("POST /move-folder", protected(folderHandler.MoveFolder))

	// Media and export
	mux.Handle("POST /upload", protected(mediaHandler.Upload))
	mux.Handle("GET /export", protected(exportHandler.Export))

	// Public rendered pages; folders never appear in these URLs
	mux.HandleFunc("GET /{slug}", viewHandler.ViewPage)

	// Middleware chain: CORS → Recovery → Routes
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
