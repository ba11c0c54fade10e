package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/catalog-service/internal/cfg"
	v1Http "github.com/DRSN-tech/catalog-service/internal/delivery/v1/http"
	"github.com/DRSN-tech/catalog-service/internal/repository/memcache"
	"github.com/DRSN-tech/catalog-service/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/catalog-service/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-service/internal/seed"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/async"
	"github.com/DRSN-tech/catalog-service/pkg/closer"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/DRSN-tech/catalog-service/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App связывает хранилище, кэш, пул воркеров, сервис каталога и HTTP-сервер.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv *v1Http.Server
	seeder  *seed.Loader
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	const forcedCloseTimeout = 2 * time.Second

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// Ресурсы закрываются в порядке LIFO: сервер, пул, кэш, база.
	c := closer.NewCloser(forcedCloseTimeout)
	c.Add(func(_ context.Context) error {
		db.Close()
		return nil
	})

	cacheRepo := memcache.NewCacheRepo(cfg.Cache, log)
	c.Add(cacheRepo.Close)

	pool := async.NewPool(cfg.Async.Workers, cfg.Async.QueueSize, log)
	c.Add(pool.Shutdown)

	prConv := pgdbConv.NewProductConverterImpl()
	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	transactor := pgdb.NewPgxTransactor(db.Pool)

	catalogUC := usecase.NewCatalogUC(productRepo, cacheRepo, transactor, pool, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(catalogUC, cacheRepo)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	c.Add(httpSrv.Stop)

	return &App{
		cfg:     cfg,
		logger:  log,
		closer:  c,
		httpSrv: httpSrv,
		seeder:  seed.NewLoader(catalogUC, productRepo, cfg.Seed, log),
	}, nil
}

// Run загружает демо-данные (если включено), запускает HTTP-сервер
// и блокируется до сигнала остановки или фатальной ошибки сервера.
func (a *App) Run() error {
	const shutdownTimeout = 10 * time.Second

	if err := a.seeder.Run(context.Background()); err != nil {
		a.logger.Errorf(err, "failed to seed demo data")
		return err
	}

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
		a.logger.Infof("received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		if appErr == nil {
			appErr = err
		}
	} else {
		a.logger.Infof("application shutdown complete")
	}

	return appErr
}

func initPGDB(log logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db, log)
	if err != nil {
		log.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(log); err != nil {
		log.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		log.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
