// Package app assembles storage, services, and the HTTP router into a
// runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lifeseed/internal/clock"
	"lifeseed/internal/config"
	"lifeseed/internal/database"
	"lifeseed/internal/logger"
	"lifeseed/internal/storage"
	"lifeseed/internal/validator"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg     *config.Config
	storage storage.Storage
	router  *gin.Engine
	srv     *http.Server
}

// NewApplication opens the configured storage and builds the full HTTP
// application, ready to Run.
func NewApplication(cfg *config.Config) (*Application, error) {
	st, err := OpenStorage(cfg)
	if err != nil {
		return nil, err
	}

	router, _, err := NewRouter(cfg, st, clock.SystemClock{Location: cfg.Location})
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Application{cfg: cfg, storage: st, router: router, srv: srv}, nil
}

// NewRouter builds the Gin engine over st. The returned dependencies give
// callers access to the services behind the routes.
func NewRouter(cfg *config.Config, st storage.Storage, clk clock.Clock) (*gin.Engine, *Dependencies, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	deps, err := BuildDependencies(cfg, st, clk)
	if err != nil {
		return nil, nil, err
	}

	r := gin.New()
	SetupMiddleware(r, cfg)
	RegisterRoutes(r, deps)
	return r, deps, nil
}

// OpenStorage opens the document storage selected by cfg.StorageDriver.
// SQL drivers are migrated before use.
func OpenStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageBolt:
		return storage.NewBolt(cfg.BoltPath)
	case config.StorageMemory:
		logger.Get().Warn("Using in-memory storage; data is lost on restart")
		return storage.NewMemory(), nil
	case config.StorageSQLite, config.StoragePostgres:
		dbConfig, err := database.NewConfig(cfg.StorageDriver)
		if err != nil {
			return nil, fmt.Errorf("failed to load database configuration: %w", err)
		}
		manager, err := database.NewManager(dbConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create database manager: %w", err)
		}
		if err := manager.RunMigrations(); err != nil {
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		return storage.NewSQL(manager.DB()), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully and
// closes the storage.
func (a *Application) Run(ctx context.Context) error {
	log := logger.Get()

	// Request contexts derive from ctx so open event streams end on shutdown.
	a.srv.BaseContext = func(net.Listener) context.Context { return ctx }

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Lifeseed server on port %s (storage: %s, auth: %v)",
			a.cfg.Port, a.cfg.StorageDriver, a.cfg.AuthEnabled())
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", a.cfg.Port)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		_ = a.storage.Close()
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownErr := a.srv.Shutdown(shutdownCtx)
	if err := a.storage.Close(); err != nil {
		log.Warnf("storage close error: %v", err)
	}
	return shutdownErr
}
