package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb"
	couchloginrepo "github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb/loginrepo"
	couchtriprepo "github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb/triprepo"
	couchuserrepo "github.com/otdr-app/trip-tracker-api/internal/adapters/couchdb/userrepo"
	"github.com/otdr-app/trip-tracker-api/internal/adapters/httpapi"
	memloginrepo "github.com/otdr-app/trip-tracker-api/internal/adapters/memory/loginrepo"
	memtriprepo "github.com/otdr-app/trip-tracker-api/internal/adapters/memory/triprepo"
	memuserrepo "github.com/otdr-app/trip-tracker-api/internal/adapters/memory/userrepo"
	"github.com/otdr-app/trip-tracker-api/internal/adapters/postgres"
	pgloginrepo "github.com/otdr-app/trip-tracker-api/internal/adapters/postgres/loginrepo"
	pgtriprepo "github.com/otdr-app/trip-tracker-api/internal/adapters/postgres/triprepo"
	pguserrepo "github.com/otdr-app/trip-tracker-api/internal/adapters/postgres/userrepo"
	"github.com/otdr-app/trip-tracker-api/internal/app/trips"
	"github.com/otdr-app/trip-tracker-api/internal/app/users"
	"github.com/otdr-app/trip-tracker-api/internal/platform/config"
	loginrepoport "github.com/otdr-app/trip-tracker-api/internal/ports/out/loginrepo"
	triprepoport "github.com/otdr-app/trip-tracker-api/internal/ports/out/triprepo"
	userrepoport "github.com/otdr-app/trip-tracker-api/internal/ports/out/userrepo"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	port := getenv("PORT", "8080")

	// STORAGE_BACKEND selects the document store:
	// - "memory" (default): process-local, for dev and tests
	// - "couchdb": STORE_URL et al, the production backend
	// - "postgres": DATABASE_URL, jsonb documents with a revision column
	storageBackend := getenv("STORAGE_BACKEND", "memory")
	var (
		userRepo  userrepoport.Repository
		tripRepo  triprepoport.Repository
		loginRepo loginrepoport.Repository
		cleanup   func()
	)

	switch storageBackend {
	case "couchdb":
		storeCfg, err := config.LoadStoreConfigFromEnv()
		if err != nil {
			logger.Fatal("invalid store config", zap.Error(err))
		}
		client := couchdb.NewClient(storeCfg.URL, storeCfg.Timeout)
		userRepo = couchuserrepo.NewRepo(client, storeCfg.UserDatabase)
		tripRepo = couchtriprepo.NewRepo(client, storeCfg.TripDatabase)
		loginRepo = couchloginrepo.NewRepo(client, storeCfg.LoginDatabase)
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		pool, err := postgres.NewPool(context.Background(), dsn, postgres.PoolOptions{})
		if err != nil {
			logger.Fatal("invalid postgres config", zap.Error(err))
		}
		cleanup = pool.Close
		userRepo = pguserrepo.NewRepo(pool)
		tripRepo = pgtriprepo.NewRepo(pool)
		loginRepo = pgloginrepo.NewRepo(pool)
	default:
		userRepo = memuserrepo.NewRepo()
		tripRepo = memtriprepo.NewRepo()
		loginRepo = memloginrepo.NewRepo()
	}

	if cleanup != nil {
		defer cleanup()
	}

	userSvc := users.NewService(userRepo, loginRepo, tripRepo)
	tripSvc := trips.NewService(tripRepo, userRepo)

	api := httpapi.NewServer(userSvc, tripSvc)
	handler := httpapi.NewRouter(api, logger)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("api listening", zap.String("port", port), zap.String("backend", storageBackend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
