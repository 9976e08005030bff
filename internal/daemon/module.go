package daemon

import (
	"context"
	"time"

	"github.com/elearn-app/elearn/internal/api"
	"github.com/elearn-app/elearn/internal/appstate"
	"github.com/elearn-app/elearn/internal/backend"
	"github.com/elearn-app/elearn/internal/bus"
	"github.com/elearn-app/elearn/internal/config"
	"github.com/elearn-app/elearn/internal/credentials"
	"github.com/elearn-app/elearn/internal/httpapi"
	"github.com/elearn-app/elearn/internal/listsync"
	"github.com/elearn-app/elearn/internal/lock"
	"github.com/elearn-app/elearn/internal/logging"
	"github.com/elearn-app/elearn/internal/resolve"
	"github.com/elearn-app/elearn/internal/session"
	"github.com/elearn-app/elearn/internal/status"
	"github.com/elearn-app/elearn/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Params holds the resolved session configuration passed to the fx module.
type Params struct {
	SessionName string
	SocketPath  string // optional override for testing; empty = use default
	// Config overrides ~/.elearn/config.toml when set.
	Config *config.Config
	Debug  bool
}

// Module returns the fx module for the daemon, composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("daemon",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideStateMachine,
			provideMonitor,
			provideLock,
			provideStore,
			provideCredentials,
			provideHTTPClient,
			provideBackend,
			appstate.New,
			provideLists,
			provideDeps,
			provideSessionService,
			api.NewCourseService,
			api.NewChatService,
			api.NewNotificationService,
			api.NewProfileService,
			api.NewContentService,
			NewServer,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig(p Params) (*config.Config, error) {
	if p.Config != nil {
		return p.Config, nil
	}
	return config.LoadOrDefault(session.ConfigPath())
}

func provideLogger(p Params) (*zap.Logger, error) {
	if err := session.EnsureDir(p.SessionName); err != nil {
		return nil, err
	}
	level := zapcore.InfoLevel
	if p.Debug {
		level = zapcore.DebugLevel
	}
	return logging.New(session.LogPath(p.SessionName), p.SessionName, level)
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideStateMachine(b *bus.Bus) *status.Machine {
	return status.NewMachine(b)
}

func provideMonitor(m *status.Machine, b *bus.Bus, logger *zap.Logger) *status.Monitor {
	return status.NewMonitor(m, b, logger)
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	logger.Info("acquiring session lock", zap.String("session", p.SessionName))
	l, err := lock.Acquire(session.Dir(p.SessionName), p.SessionName)
	if err != nil {
		return nil, err
	}
	logger.Info("session lock acquired")
	return l, nil
}

// provideStore takes the lock so the database is only opened by its owner.
func provideStore(p Params, _ *lock.Lock, logger *zap.Logger) (*store.DB, error) {
	dbPath := session.DBPath(p.SessionName)
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	} else {
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	logger.Info("store initialized", zap.String("path", dbPath))
	return db, nil
}

func provideCredentials(db *store.DB, logger *zap.Logger) *credentials.Accessor {
	return credentials.NewAccessor(db, logger)
}

func provideHTTPClient(cfg *config.Config, logger *zap.Logger) *httpapi.Client {
	opts := httpapi.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout.Duration,
		Logger:  logger,
	}
	if cfg.Breaker.Enabled {
		opts.Breaker = httpapi.NewBreaker(cfg.Breaker.Failures, cfg.Breaker.OpenTimeout.Duration, logger)
	}
	logger.Info("backend configured", zap.String("base_url", cfg.APIBaseURL), zap.Bool("breaker", cfg.Breaker.Enabled))
	return httpapi.New(opts)
}

func provideBackend(client *httpapi.Client, creds *credentials.Accessor) *backend.API {
	return backend.New(client, creds)
}

func formatter(cfg *config.Config) resolve.Formatter {
	return resolve.Formatter{ClockLayout: cfg.Display.ClockLayout, DateLayout: cfg.Display.DateLayout}
}

func provideLists(backendAPI *backend.API, state *appstate.State, cfg *config.Config, b *bus.Bus, db *store.DB, logger *zap.Logger) *api.Lists {
	return api.NewLists(backendAPI, state, formatter(cfg), listsync.Options{Bus: b, Recorder: db, Logger: logger})
}

func provideDeps(
	backendAPI *backend.API,
	creds *credentials.Accessor,
	state *appstate.State,
	lists *api.Lists,
	machine *status.Machine,
	b *bus.Bus,
	db *store.DB,
	cfg *config.Config,
	logger *zap.Logger,
) api.Deps {
	return api.Deps{
		API:       backendAPI,
		Creds:     creds,
		State:     state,
		Lists:     lists,
		Machine:   machine,
		Bus:       b,
		DB:        db,
		Formatter: formatter(cfg),
		Logger:    logger,
	}
}

func provideSessionService(p Params, cfg *config.Config, d api.Deps) *api.SessionService {
	return api.NewSessionService(p.SessionName, cfg.APIBaseURL, d)
}

const connectTimeout = 30 * time.Second

func registerLifecycle(
	lc fx.Lifecycle,
	srv *Server,
	lk *lock.Lock,
	db *store.DB,
	monitor *status.Monitor,
	sessionSvc *api.SessionService,
	notificationSvc *api.NotificationService,
	logger *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sessionSvc.OnClear(notificationSvc.Reset)
			monitor.Start(context.Background())

			// Start gRPC server in background.
			go func() {
				if err := srv.Start(); err != nil {
					logger.Error("gRPC server error", zap.Error(err))
				}
			}()

			// Settle the initial state without holding up startup.
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
				defer cancel()
				if err := sessionSvc.Connect(ctx); err != nil {
					logger.Warn("initial connect failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			srv.Stop(ctx)
			monitor.Stop()
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("daemon stopped")
			return nil
		},
	})
}
