package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/internal/console"
	"github.com/frahmantamala/employee-admin/internal/core/events"
	"github.com/frahmantamala/employee-admin/internal/employee"
	"github.com/frahmantamala/employee-admin/internal/employeeservice"
	"github.com/frahmantamala/employee-admin/internal/session"
	"github.com/frahmantamala/employee-admin/internal/transport"
	"github.com/frahmantamala/employee-admin/internal/transport/middleware"
	"github.com/frahmantamala/employee-admin/internal/transport/rest"
	"github.com/frahmantamala/employee-admin/internal/transport/swagger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server serving the admin console`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config         *internal.Config
	Router         *chi.Mux
	Logger         *slog.Logger
	EventBus       *events.EventBus
	Sessions       *session.Service
	HealthChecker  *rest.HealthHandler
	SessionHandler *session.Handler
	ConsoleHandler *console.Handler
	closeStore     func() error
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "employee_service", deps.Config.EmployeeService.BaseURL)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	go session.RunJanitor(janitorCtx, deps.Sessions, time.Minute, deps.Logger)

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		stopJanitor()
		if err := deps.EventBus.Drain(ctx); err != nil {
			deps.Logger.Warn("Event handlers still running at shutdown", "error", err)
		}
		if err := deps.closeStore(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		stopJanitor()
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(deps.Router, deps.HealthChecker, deps.SessionHandler, deps.ConsoleHandler, rest.SecurityOptions{
		ContentSecurityPolicy: middleware.ConsoleCSP(origin(deps.Config.EmployeeService.BaseURL)),
	}, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg := initLogger(config)

	if _, err := swagger.Load(context.Background()); err != nil {
		return nil, err
	}

	repo, closeStore, err := openSessionRepository(config, lg)
	if err != nil {
		return nil, err
	}

	eventBus := events.NewEventBus(lg)
	states := console.NewStateStore()

	inspector := session.NewTokenInspector(config.Security.JWTSecret)
	sessionService := session.NewService(repo, inspector, config.Security.SessionTTL, lg)
	sessionService.OnRemoved(func(id string) {
		_ = eventBus.PublishSync(context.Background(), events.NewSessionRemovedEvent(id))
	})
	eventBus.Subscribe(events.EventTypeSessionRemoved, states.HandleSessionRemoved)
	eventBus.Subscribe(events.EventTypeEmployeeAdded, auditEmployeeAdded(lg))

	client := employeeservice.NewClient(employeeservice.Config{
		BaseURL:    config.EmployeeService.BaseURL,
		Timeout:    config.EmployeeService.Timeout,
		HealthPath: config.EmployeeService.HealthPath,
	}, lg)
	employeeService := employee.NewService(client, lg)

	baseHandler := transport.NewBaseHandler(lg)
	controller := console.NewController(employeeService, states, eventBus, lg)
	consoleHandler, err := console.NewHandler(baseHandler, controller, config.Console.LoginPath)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("failed to parse console templates: %w", err)
	}

	guard := session.NewGuard(config.Console.IndexPath, config.Console.LoginPath)
	sessionHandler := session.NewHandler(baseHandler, sessionService, guard, session.CookieConfig{
		Name:   config.Security.SessionCookieName,
		Secure: config.Security.SecureCookies,
	})

	healthChecker := rest.NewHealthHandler(map[string]rest.Checker{
		"sessions":         sessionService.Ping,
		"employee_service": client.Ping,
	})

	return &Dependencies{
		Config:         config,
		Router:         chi.NewRouter(),
		Logger:         lg,
		EventBus:       eventBus,
		Sessions:       sessionService,
		HealthChecker:  healthChecker,
		SessionHandler: sessionHandler,
		ConsoleHandler: consoleHandler,
		closeStore:     closeStore,
	}, nil
}

func auditEmployeeAdded(lg *slog.Logger) events.Handler {
	return func(ctx context.Context, event events.Event) error {
		e, ok := event.(*events.EmployeeAddedEvent)
		if !ok {
			return nil
		}
		lg.Info("audit: employee added",
			"event_id", e.EventID(),
			"email", e.Email,
			"job_title", e.JobTitle,
			"added_by_role", e.AddedByRole,
			"trace_id", e.TraceID)
		return nil
	}
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

func origin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
