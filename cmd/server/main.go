package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/jainilbavishi24/spotify-clone/internal/auth"
	"github.com/jainilbavishi24/spotify-clone/internal/config"
	"github.com/jainilbavishi24/spotify-clone/internal/events"
	"github.com/jainilbavishi24/spotify-clone/internal/httputil"
	"github.com/jainilbavishi24/spotify-clone/internal/playlists"
	"github.com/jainilbavishi24/spotify-clone/internal/songs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("server: config: %v", err)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("server: failed to connect to DB: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("server: db ping: %v", err)
	}

	// Migration order matters: playlists reference users and songs.
	if err := auth.AutoMigrate(ctx, pool); err != nil {
		log.Fatalf("server: migrate users: %v", err)
	}
	if err := songs.AutoMigrate(ctx, pool); err != nil {
		log.Fatalf("server: migrate songs: %v", err)
	}
	if err := playlists.AutoMigrate(ctx, pool); err != nil {
		log.Fatalf("server: migrate playlists: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("server: upload dir: %v", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("server: invalid REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opt)
	}
	pub := events.NewPublisher(rdb)

	authSrv := auth.NewServer(auth.NewPostgresRepository(pool), []byte(cfg.JWTSecret), cfg.TokenTTL)
	songSrv := songs.NewServer(pool, pub, cfg.UploadDir)
	playlistSrv := playlists.NewServer(pool, pub)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         3600,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authSrv.Router())
		r.Mount("/users", authSrv.UsersRouter())
		r.Mount("/songs", songSrv.Router())
		r.Mount("/playlists", playlistSrv.Router(authSrv.RequireUser))
	})

	// Uploaded audio is served straight off disk.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	addr := cfg.Addr()
	log.Printf("server listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server: %v", err)
	}
}
