package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/go-chi/chi/v5"
	"github.com/lunaria-app/sanctuary-backend/internal/config"
	"github.com/lunaria-app/sanctuary-backend/internal/database"
	"github.com/lunaria-app/sanctuary-backend/internal/middleware"
	"github.com/lunaria-app/sanctuary-backend/internal/routes"
	"github.com/lunaria-app/sanctuary-backend/internal/services"
	"github.com/lunaria-app/sanctuary-backend/pkg/utils"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Check encryption key (warn if not set, but don't fail)
	if cfg.EncryptionKey == "" {
		log.Println("⚠️  WARNING: ENCRYPTION_KEY not set. Letters to self will be stored in plaintext.")
		log.Println("   To generate a key, run: openssl rand -base64 32")
		log.Println("   Set it in your environment: ENCRYPTION_KEY=<generated-key>")
	} else {
		if _, err := utils.GetEncryptionKey(); err != nil {
			log.Printf("⚠️  WARNING: ENCRYPTION_KEY is invalid: %v", err)
			log.Println("   Letters to self will be stored in plaintext.")
			log.Println("   Key must be base64-encoded 32 bytes. Generate with: openssl rand -base64 32")
		} else {
			log.Println("✅ Encryption key configured")
		}
	}

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Connect to MongoDB (wizard drafts)
	log.Printf("Connecting to MongoDB...")
	if err := database.ConnectMongo(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.DisconnectMongo()

	// Ensure MongoDB indexes for wizard drafts
	if err := services.EnsureDraftIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB draft indexes: %v", err)
	} else {
		log.Println("✅ MongoDB draft indexes ensured")
	}

	// Start the Redis subscriber feeding reader websockets
	services.StartSanctuarySubscriber(context.Background())

	// Start the time-mode watcher so an open session crosses the morning
	// boundary without a reload
	services.StartTimeModeWatcher(services.TimeModeRecheckInterval)
	log.Println("✅ Time-mode watcher started (morning window 07:00-11:59)")

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, host check, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	// Health check (no rate limit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r, cfg)

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/signup")
	log.Println("  POST /api/auth/signin")
	log.Println("  POST /api/auth/signout")
	log.Println("  GET  /api/auth/me")
	log.Println("  GET  /api/sanctuary/state")
	log.Println("  POST /api/wizard/*")
	log.Println("  GET  /api/journal/entries")
	log.Println("  GET  /api/reader/overview")
	log.Println("  GET  /api/reader/entry")
	log.Println("  POST /api/notes")
	log.Println("  GET  /api/notes/inbox")
	log.Println("  GET  /api/notes/cooldown")
	log.Println("  GET  /api/settings")
	log.Println("  GET  /api/streak")
	log.Println("  GET  /api/morning/message")
	log.Println("  GET  /api/valentine/reason")
	log.Println("  GET  /api/valentine/counter")
	log.Println("  GET  /ws/reader")

	log.Printf("🚀 Sanctuary backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
