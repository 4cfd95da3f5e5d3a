package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnshRaj112/aih-backend/internal/catalog"
	"github.com/AnshRaj112/aih-backend/internal/config"
	"github.com/AnshRaj112/aih-backend/internal/database"
	"github.com/AnshRaj112/aih-backend/internal/handlers"
	"github.com/AnshRaj112/aih-backend/internal/middleware"
	"github.com/AnshRaj112/aih-backend/internal/routes"
	"github.com/AnshRaj112/aih-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.SecretKey == config.DefaultSecretKey {
		if cfg.IsProduction() {
			log.Fatal("SECRET_KEY must be set in production")
		}
		log.Println("⚠️  WARNING: SECRET_KEY not set, using the development default")
	}

	cat, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		log.Fatal("Failed to load symptom catalog:", err)
	}
	log.Printf("✅ Symptom catalog loaded (%d symptoms)", cat.Len())

	log.Printf("Connecting to MongoDB...")
	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB, cfg.MongoTLSCAFile)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect(db)

	log.Printf("Connecting to Redis...")
	rdb, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis(rdb)

	accounts, err := setupAccounts(db.Collection(services.UsersCollection))
	if err != nil {
		log.Fatal("Failed to ensure user indexes:", err)
	}
	log.Println("✅ MongoDB user indexes ensured")

	sessions := services.NewSessionManager(rdb, cfg.SecretKey, cfg.SessionTTL, cfg.IsProduction())

	h := handlers.New(accounts, sessions, cat, []handlers.HealthCheck{
		{Name: "mongo", Ping: func(ctx context.Context) error { return database.Ping(ctx, db.Client()) }},
		{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))

	routes.SetupRoutes(r, h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 AIH backend running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// setupAccounts builds the account store once its unique indexes are in
// place. Registration relies on them for username and email uniqueness.
func setupAccounts(users *mongo.Collection) (*services.AccountStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	accounts := services.NewAccountStore(users)
	if err := accounts.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return accounts, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	log.Printf("Loading symptom catalog from %s", path)
	return catalog.Load(path)
}
