package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"wikiflow/internal/auth"
	"wikiflow/internal/config"
	auditRepo "wikiflow/internal/domain/repositories/audit"
	"wikiflow/internal/handler"
	"wikiflow/internal/middleware"
	"wikiflow/internal/repository"
	redisRepo "wikiflow/internal/repository/redis"
	serviceAudit "wikiflow/internal/service/audit"
	serviceAuth "wikiflow/internal/service/auth"
	serviceWiki "wikiflow/internal/service/wiki"
	"wikiflow/internal/telemetry"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, logFile, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage", cfg.StorageBackend,
		"table_prefix", cfg.TablePrefix,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "wikiflow", cfg.OTelEndpoint, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	// Token verification: JWKS when configured, shared secret otherwise
	var jwtVerifier auth.JWTVerifier
	if cfg.JWKSURL != "" {
		jwtVerifier, err = auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	} else {
		jwtVerifier, err = auth.NewHMACVerifier(cfg.JWTSecret, logger)
	}
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	backend, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer backend.Close()
	repos := backend.Repos

	checks := map[string]handler.Pinger{"database": handler.PingFunc(backend.Ping)}

	// Optional live activity feed
	var publishers []auditRepo.ActivityPublisher
	var feed auditRepo.ActivityFeed
	if cfg.RedisURL != "" {
		activity, err := redisRepo.NewActivityPublisherFromURL(cfg.RedisURL, logger)
		if err != nil {
			log.Fatalf("Failed to configure Redis: %v", err)
		}
		defer activity.Close()
		if err := activity.Ping(ctx); err != nil {
			logger.Warn("redis unreachable; activity events will be retried per event", "error", err)
		}
		publishers = append(publishers, activity)
		feed = activity
		checks["redis"] = activity
		logger.Info("activity feed enabled")
	}

	// Audit recorder persists events after each mutation commits
	resolver := serviceAuth.NewUserActorResolver(repos.Users, logger)
	recorder := serviceAudit.NewRecorder(repos.Events, resolver, serviceAudit.RecorderConfig{
		QueueSize: cfg.AuditQueueSize,
		Workers:   cfg.AuditWorkers,
	}, logger, publishers...)
	recorder.Start()

	// Create services
	authorizer := serviceAuth.NewRoleAuthorizer()
	wikiServices := serviceWiki.SetupServices(repos, authorizer, recorder, logger)
	auditService := serviceAudit.NewQueryService(repos.Events, repos.Spaces, logger)

	// Create handlers
	handlers := &handler.Handlers{
		Health:  handler.NewHealthHandler(checks),
		Space:   handler.NewSpaceHandler(wikiServices.Spaces, auditService, logger),
		Article: handler.NewArticleHandler(wikiServices.Articles, wikiServices.Versions, wikiServices.Comments, logger),
		Review:  handler.NewReviewHandler(wikiServices.Reviews, logger),
		Tag:     handler.NewTagHandler(wikiServices.Tags, logger),
		Search:  handler.NewSearchHandler(wikiServices.Search, auditService, logger),
	}
	if feed != nil {
		handlers.Activity = handler.NewActivityStreamHandler(wikiServices.Spaces, feed, nil, logger)
	}
	mux := handler.NewRouter(handlers)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: Tracing → CORS → Recovery → Auth → Routes
	h = middleware.AuthMiddleware(jwtVerifier)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)
	h = middleware.Tracing()(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("server failed", "error", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	// Requests are done; flush what they recorded
	if err := recorder.Close(shutdownCtx); err != nil {
		logger.Error("audit drain incomplete", "error", err, "dropped", recorder.Dropped())
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}
