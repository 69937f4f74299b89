package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"docvault/internal/auth"
	"docvault/internal/authz"
	"docvault/internal/config"
	"docvault/internal/handler"
	"docvault/internal/metrics"
	"docvault/internal/middleware"
	"docvault/internal/repository/postgres"
	"docvault/internal/service"
	"docvault/internal/storage"
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

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier against the identity provider's JWKS endpoint
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	groupRepo := postgres.NewGroupRepository(repoConfig)
	companyRepo := postgres.NewCompanyRepository(repoConfig)
	departmentRepo := postgres.NewDepartmentRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	documentRepo := postgres.NewDocumentRepository(repoConfig)
	activityRepo := postgres.NewActivityRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Blob storage
	blobStore, err := storage.NewMinioStore(ctx, storage.MinioConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to connect to blob storage: %v", err)
	}

	// Permission resolution
	legacyProfile, err := authz.LoadLegacyDefaults()
	if err != nil {
		log.Fatalf("Failed to load legacy permission defaults: %v", err)
	}
	resolver := authz.NewResolver(userRepo, groupRepo, legacyProfile, logger)

	// Services
	usageLimiter := service.NewUsageLimiter(activityRepo, logger)
	navigation := service.NewNavigationProvider(companyRepo, departmentRepo, folderRepo, documentRepo, logger)
	search := service.NewSearchEngine(companyRepo, departmentRepo, folderRepo, documentRepo, logger)
	transfer := service.NewTransferService(documentRepo, folderRepo, activityRepo, txManager, logger)
	ingest := service.NewDocumentIngest(documentRepo, folderRepo, blobStore, usageLimiter, logger)
	lookups := service.NewDependentLookups(companyRepo, departmentRepo, folderRepo, logger)

	// Handlers
	explorerHandler := handler.NewExplorerHandler(resolver, navigation, search, logger)
	transferHandler := handler.NewTransferHandler(resolver, transfer, logger)
	documentHandler := handler.NewDocumentHandler(resolver, ingest, logger)
	lookupHandler := handler.NewLookupHandler(resolver, lookups, logger)

	logger.Info("services initialized")

	serverMetrics := metrics.New()

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /metrics", serverMetrics.Handler())

	mux.HandleFunc("GET /api/explorer", explorerHandler.Browse)

	mux.HandleFunc("POST /api/documents", documentHandler.Upload)
	mux.HandleFunc("GET /api/documents/{id}/download", documentHandler.Download)
	mux.HandleFunc("POST /api/documents/move", transferHandler.Move)

	mux.HandleFunc("GET /api/lookups/departments", lookupHandler.Departments)
	mux.HandleFunc("GET /api/lookups/folders", lookupHandler.Folders)

	// Build middleware chain
	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → RequestLog → Auth → Metrics → Routes
	var h http.Handler = serverMetrics.Instrument(mux)
	h = middleware.Auth(jwtVerifier)(h)
	h = middleware.RequestLog(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // large downloads need room
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
