package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/radhe-vastra/storefront-backend/internal/bus"
	config "github.com/radhe-vastra/storefront-backend/internal/cfg"
	v1Http "github.com/radhe-vastra/storefront-backend/internal/delivery/v1/http"
	"github.com/radhe-vastra/storefront-backend/internal/repository/boltdb"
	boltConv "github.com/radhe-vastra/storefront-backend/internal/repository/boltdb/converter"
	minioRepo "github.com/radhe-vastra/storefront-backend/internal/repository/minio"
	"github.com/radhe-vastra/storefront-backend/internal/repository/pgdb"
	pgdbConv "github.com/radhe-vastra/storefront-backend/internal/repository/pgdb/converter"
	redisRepo "github.com/radhe-vastra/storefront-backend/internal/repository/redis"
	"github.com/radhe-vastra/storefront-backend/internal/usecase"
	"github.com/radhe-vastra/storefront-backend/pkg/clients"
	"github.com/radhe-vastra/storefront-backend/pkg/closer"
	"github.com/radhe-vastra/storefront-backend/pkg/e"
	"github.com/radhe-vastra/storefront-backend/pkg/logger"
	"github.com/radhe-vastra/storefront-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App собирает выбранный бэкенд хранилища, шину, поверхности и HTTP-сервер.
// Бэкенд выбирается один раз из конфигурации; дальше весь код видит
// только интерфейсы usecase и нигде не ветвится по его идентичности.
type App struct {
	cfg       *config.Config
	logger    logger.Logger
	closer    *closer.Closer
	catalogUC usecase.CatalogUC
	httpSrv   *v1Http.Server
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(0)

	store, assets, checker, err := buildStore(cfg, log, cl)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	productsBus := bus.NewProductsBus()

	adminUC := usecase.NewAdminUC(store, assets, checker, productsBus, log)
	catalogUC := usecase.NewCatalogUC(store, productsBus, cfg.Catalog.RefreshInterval, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(adminUC, catalogUC, cfg.Admin)

	return &App{
		cfg:       cfg,
		logger:    log,
		closer:    cl,
		catalogUC: catalogUC,
		httpSrv:   v1Http.NewServer(r, cfg.Http),
	}, nil
}

// buildStore конструирует шлюз хранилища для выбранного бэкенда.
func buildStore(cfg *config.Config, log logger.Logger, cl *closer.Closer) (
	usecase.ProductStore, usecase.AssetStore, usecase.AvailabilityChecker, error,
) {
	switch cfg.Store.Backend {
	case config.BackendLocal:
		db, err := boltdb.Open(cfg.Store.BoltPath)
		if err != nil {
			return nil, nil, nil, err
		}
		cl.Add(func(_ context.Context) error { return db.Close() })

		repo := boltdb.NewProductRepo(db, boltConv.NewProductConverterImpl(), log)
		log.Infof("local product store opened at %s", cfg.Store.BoltPath)

		// Локальный бэкенд инлайнит изображения, отдельного хранилища блобов нет
		return repo, nil, repo, nil

	case config.BackendRemote:
		db, err := initPGDB(log, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		cl.Add(func(_ context.Context) error { db.Close(); return nil })

		repo := pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverterImpl())

		minioClient, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			return nil, nil, nil, err
		}

		minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName)
		minioCancel()
		if err != nil {
			return nil, nil, nil, err
		}

		imageRepo := minioRepo.NewImageRepo(minioClient, cfg.Minio)

		var store usecase.ProductStore = repo
		if cfg.Redis.Enabled {
			redisClient := clients.NewRedisClient(cfg.Redis)
			redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := redisClient.Ping(redisCtx)
			redisCancel()
			if err != nil {
				return nil, nil, nil, err
			}
			cl.Add(func(_ context.Context) error { return redisClient.Client.Close() })

			store = redisRepo.NewCachedProductStore(repo, redisClient, cfg.Redis, log)
			log.Infof("product list cache enabled at %s", cfg.Redis.Addr)
		}

		return store, imageRepo, repo, nil

	default:
		return nil, nil, nil, e.ErrUnknownStoreBackend
	}
}

// Run запускает витрину и HTTP-сервер и блокируется до сигнала завершения.
func (a *App) Run() error {
	catalogCtx, catalogCancel := context.WithCancel(context.Background())
	go a.catalogUC.Run(catalogCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	catalogCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("resource shutdown finished with errors: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
