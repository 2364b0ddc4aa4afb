package entrypoint

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/covers"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/authors"
	"github.com/mrlokans/bookshelf/internal/database/books"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/metrics"
	"github.com/mrlokans/bookshelf/internal/pagecache"
	"github.com/mrlokans/bookshelf/internal/readonly"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/session"
	"github.com/mrlokans/bookshelf/internal/tasks"
	"github.com/mrlokans/bookshelf/internal/views"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down gracefully.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Info().Dur("timeout", timeout).Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work first so no task touches a closed database
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info().Msg("server exited")
	return nil
}

// Run wires every component from cfg and serves until interrupted.
func Run(cfg *config.Config, version string) error {
	log.Info().Str("version", version).Msg("starting bookshelf")

	db, err := OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	}()

	authorRepo := authors.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	notifier := views.NewNotifier()

	var recorder *metrics.Recorder
	var catalogOpts []catalog.Option
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder()
		notifier.Subscribe("metrics", recorder)
		catalogOpts = append(catalogOpts, catalog.WithObserver(recorder))
	}

	svc := catalog.NewService(authorRepo, bookRepo, notifier, catalogOpts...)

	sqlDB, err := db.SQLDB()
	if err != nil {
		return fmt.Errorf("failed to get SQL DB for sessions: %w", err)
	}
	sessions, err := session.NewManager(sqlDB, cfg.Sessions)
	if err != nil {
		return fmt.Errorf("failed to initialize session manager: %w", err)
	}

	var pageCache *pagecache.Cache
	if cfg.Cache.Enabled {
		pageCache = newPageCache(cfg, sessions, recorder)
		notifier.Subscribe("pages", pageCache)
	}

	coverCache, err := covers.NewCache(cfg.Covers.Dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", cfg.Covers.Dir).Msg("failed to initialize cover cache, serving remote images")
		coverCache = nil
	} else {
		notifier.Subscribe("covers", coverCache)
		log.Info().Str("dir", coverCache.CacheDir()).Msg("cover cache initialized")
	}

	// Task queue and scheduled pruning only make sense with a local cache
	var (
		taskClient    *tasks.Client
		taskCtxCancel context.CancelFunc
		warmer        *tasks.CoverWarmer
		pruner        *scheduler.CoverPruneScheduler
	)
	if cfg.Tasks.Enabled && coverCache != nil {
		taskClient, err = tasks.NewClient(cfg.Database.Path, cfg.Tasks)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error().Err(err).Msg("error closing task client")
			}
		}()

		owners := tasks.Owners{Authors: authorRepo, Books: bookRepo}
		taskClient.Register(
			tasks.NewWarmCoverQueue(coverCache),
			tasks.NewPruneCoversQueue(coverCache, owners),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		defer taskCtxCancel()
		go taskClient.Start(taskCtx)

		warmer = tasks.NewCoverWarmer(taskClient)

		pruner = scheduler.NewCoverPruneScheduler(taskClient, cfg.Covers.PruneSchedule)
		if err := pruner.Start(taskCtx); err != nil {
			log.Warn().Err(err).Str("schedule", cfg.Covers.PruneSchedule).Msg("cover pruning disabled")
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Catalog:        svc,
		Database:       db,
		Sessions:       sessions,
		CSRFSecret:     csrfSecret(cfg.Sessions.CSRFSecret),
		SecureCookies:  cfg.Sessions.SecureCookies,
		ReadOnly:       readonly.NewMiddleware(cfg.HTTP.ReadOnly),
		PageCache:      pageCache,
		Metrics:        recorder,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		Version:        version,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	}
	if coverCache != nil {
		routerCfg.Covers = coverCache
	}
	if warmer != nil {
		routerCfg.Warmer = warmer
	}
	if len(routerCfg.CSRFSecret) == 0 {
		log.Warn().Msg("CSRF_SECRET is not set, form posts are not CSRF-protected")
	}
	if cfg.HTTP.ReadOnly {
		log.Info().Msg("read-only mode enabled, write operations will be blocked")
	}

	router, err := http_controllers.NewRouter(routerCfg)
	if err != nil {
		if pruner != nil {
			pruner.Stop()
		}
		return err
	}

	onShutdown := func(ctx context.Context) {
		if pruner != nil {
			pruner.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	return Serve(router, cfg, onShutdown)
}

// OpenDatabase opens and migrates the catalog database described by cfg.
func OpenDatabase(cfg *config.Config) (*database.Database, error) {
	db, err := database.NewDatabase(cfg.Database.Path, database.WithLogLevel(database.ParseLogLevel(cfg.Database.LogLevel)))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

// newPageCache picks Redis when configured and reachable, process memory otherwise.
func newPageCache(cfg *config.Config, sessions *session.Manager, recorder *metrics.Recorder) *pagecache.Cache {
	var store pagecache.Store = pagecache.NewMemoryStore()
	if cfg.Cache.RedisAddr != "" {
		redisStore := pagecache.NewRedisStore(pagecache.NewRedisClient(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB))
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redisStore.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("redis unreachable, caching pages in memory")
		} else {
			log.Info().Str("addr", cfg.Cache.RedisAddr).Msg("caching pages in redis")
			store = redisStore
		}
	}

	opts := []pagecache.Option{
		// A pending flash belongs to one visitor and must not be shared
		pagecache.WithBypass(func(c *gin.Context) bool {
			return sessions.HasFlash(c.Request.Context())
		}),
	}
	if recorder != nil {
		opts = append(opts, pagecache.WithHitCounter(recorder))
	}
	return pagecache.New(store, cfg.Cache.TTL, opts...)
}

// csrfSecret accepts a hex-encoded or raw secret.
func csrfSecret(configured string) []byte {
	if configured == "" {
		return nil
	}
	if secret, err := hex.DecodeString(configured); err == nil {
		return secret
	}
	return []byte(configured)
}
