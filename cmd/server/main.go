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
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/AnshRaj112/vidtube-backend/internal/config"
	"github.com/AnshRaj112/vidtube-backend/internal/database"
	"github.com/AnshRaj112/vidtube-backend/internal/handlers"
	"github.com/AnshRaj112/vidtube-backend/internal/middleware"
	"github.com/AnshRaj112/vidtube-backend/internal/routes"
	"github.com/AnshRaj112/vidtube-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("MongoDB URI: %s", database.MaskURI(cfg.MongoURI))
	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Println("Troubleshooting tips:")
		log.Println("1. Check if your IP is whitelisted in MongoDB Atlas")
		log.Println("2. Verify your connection string format (should use mongodb+srv:// for Atlas)")
		log.Println("3. Ensure username and password are correct")
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer database.Disconnect(client)

	store := database.NewStore(client.Database(database.DatabaseName(cfg.MongoURI, cfg.DBName)))
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to ensure MongoDB indexes: ", err)
	}
	log.Println("✅ MongoDB indexes ensured")

	media, err := services.NewMediaHost(cfg)
	if err != nil {
		log.Fatal("Failed to initialize media host: ", err)
	}
	log.Printf("✅ Media host initialized (%s)", cfg.MediaProvider)

	// Redis only backs the cleanup queue; without it pending deletes live in memory
	var queue services.CleanupQueue
	if cfg.RedisURI != "" {
		rdb, err := database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			log.Fatal("Failed to connect to Redis: ", err)
		}
		defer rdb.Close()
		queue = services.NewRedisCleanupQueue(rdb)
	} else {
		log.Println("⚠️  REDIS_URI not set, asset cleanup queue is in-memory")
		queue = services.NewMemoryCleanupQueue(0)
	}
	cleaner := services.NewAssetCleaner(media, queue)
	go cleaner.Run(ctx)

	tokens := services.NewTokenIssuer(cfg)
	sessions := services.NewSessionManager(store, tokens, media, cleaner)
	profiles := services.NewProfileService(store, media, cleaner)
	channels := services.NewChannelService(store)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	if cfg.IsProduction() {
		r.Use(middleware.HostCheck(middleware.Hostname(cfg.Host)))
		log.Println("✅ Production host check enabled")
	}

	routes.SetupRoutes(r, routes.Handlers{
		Auth:          sessions,
		Users:         handlers.NewUserHandler(cfg, sessions, profiles, channels),
		Subscriptions: handlers.NewSubscriptionHandler(channels),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 VidTube backend running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR [main] graceful shutdown: %v", err)
	}
}
