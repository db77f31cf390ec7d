// cmd/api/main.go
// Application entrypoint: configuration, database, module wiring, HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mariable/mariable-backend/internal/auth"
	"github.com/mariable/mariable-backend/internal/common/database"
	"github.com/mariable/mariable-backend/internal/common/utils"
	"github.com/mariable/mariable-backend/internal/config"
	"github.com/mariable/mariable-backend/internal/couples"
	"github.com/mariable/mariable-backend/internal/invitations"
	"github.com/mariable/mariable-backend/internal/matching"
	"github.com/mariable/mariable-backend/internal/portfolio"
	"github.com/mariable/mariable-backend/internal/providers"
	"github.com/mariable/mariable-backend/internal/reviews"
)

func main() {
	// Step 1: Load configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Step 2: Connect to PostgreSQL
	sqlDB, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := sqlx.NewDb(sqlDB, "postgres")
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Step 3: Run migrations
	if err := runMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations applied")

	// Step 4: Connect to Redis (optional; profile cache degrades without it)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Redis unavailable, running without profile cache: %v", err)
			redisClient = nil
		} else {
			log.Println("Connected to Redis")
			defer redisClient.Close()
		}
	}

	// Step 5: Build modules
	authMw := auth.NewMiddleware(cfg.JWTSecret)

	var profileCache *providers.ProfileCache
	if redisClient != nil {
		profileCache = providers.NewProfileCache(redisClient, cfg.ProviderCacheTTL)
	}

	matchingRepo := matching.NewPostgresRepository(db)
	matchingService := matching.NewService(matchingRepo, cfg.MatchingTopN, cfg.SuggestionSampleSize)
	matchingHandler := matching.NewHandler(matchingService)

	providersRepo := providers.NewPostgresRepository(db)
	providersService := providers.NewService(providersRepo, profileCache)
	providersHandler := providers.NewHandler(providersService)

	couplesRepo := couples.NewPostgresRepository(db)
	couplesService := couples.NewService(couplesRepo)
	couplesHandler := couples.NewHandler(couplesService)

	portfolioRepo := portfolio.NewPostgresRepository(db)
	portfolioService := portfolio.NewService(portfolioRepo)
	portfolioHandler := portfolio.NewHandler(portfolioService)

	reviewsRepo := reviews.NewPostgresRepository(db)
	reviewsService := reviews.NewService(reviewsRepo)
	reviewsHandler := reviews.NewHandler(reviewsService)

	var emailProvider invitations.EmailProvider
	if cfg.EmailProvider == "sendgrid" {
		emailProvider = invitations.NewSendGridEmailProvider(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	} else {
		emailProvider = invitations.NewMockEmailProvider()
	}
	invitationsRepo := invitations.NewPostgresRepository(db)
	invitationsService := invitations.NewService(invitationsRepo, emailProvider, cfg.InviteBaseURL, cfg.InviteExpiry)
	invitationsHandler := invitations.NewHandler(invitationsService)

	// Step 6: Build router
	router := mux.NewRouter()
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	router.HandleFunc("/health", healthHandler(db)).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	matching.RegisterRoutes(api, matchingHandler, authMw)
	providers.RegisterRoutes(api, providersHandler, authMw)
	couples.RegisterRoutes(api, couplesHandler, authMw)
	portfolio.RegisterRoutes(api, portfolioHandler, authMw)
	reviews.RegisterRoutes(api, reviewsHandler, authMw)
	invitations.RegisterRoutes(api, invitationsHandler, authMw)

	// Step 7: Start server with graceful shutdown
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s (%s)", cfg.Port, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func healthHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.RequestURI, time.Since(start))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
