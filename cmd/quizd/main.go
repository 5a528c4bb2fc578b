package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/Sash0G/PlamiItaly/internal/api/http"
	"github.com/Sash0G/PlamiItaly/internal/config"
	"github.com/Sash0G/PlamiItaly/internal/dataset"
	"github.com/Sash0G/PlamiItaly/internal/db"
	"github.com/Sash0G/PlamiItaly/internal/quiz"
	"github.com/Sash0G/PlamiItaly/internal/scorestore"
	"github.com/Sash0G/PlamiItaly/web"
)

func main() {
	cfg := config.FromEnv()

	pool, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		log.Fatalf("dataset load failed: %v", err)
	}
	if len(pool) == 0 {
		log.Fatalf("dataset %s contains no questions", cfg.DatasetPath)
	}

	// --- Score store (fail soft: fall back to in-memory) ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var store scorestore.Store
	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Printf("db open failed, scores will not survive restart: %v", err)
		store = scorestore.NewInMemoryStore()
	} else {
		store = scorestore.NewSQLStore(dbh)
	}

	seed := cfg.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng, err := quiz.NewEngine(pool, store, rand.New(rand.NewSource(seed)))
	if err != nil {
		log.Fatalf("engine init: %v", err)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(ar chi.Router) {
		api.Mount(ar, eng)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Handle("/*", web.Handler())

	log.Printf("listening on %s (questions=%d, db=%s)", cfg.HTTPAddr, len(pool), cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
