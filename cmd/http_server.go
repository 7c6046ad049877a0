package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/twofourteen/hr-portal/internal"
	"github.com/twofourteen/hr-portal/internal/attendance"
	attendancepg "github.com/twofourteen/hr-portal/internal/attendance/postgres"
	"github.com/twofourteen/hr-portal/internal/auth"
	authpg "github.com/twofourteen/hr-portal/internal/auth/postgres"
	"github.com/twofourteen/hr-portal/internal/breaks"
	breakspg "github.com/twofourteen/hr-portal/internal/breaks/postgres"
	"github.com/twofourteen/hr-portal/internal/leave"
	leavepg "github.com/twofourteen/hr-portal/internal/leave/postgres"
	"github.com/twofourteen/hr-portal/internal/roster"
	rosterpg "github.com/twofourteen/hr-portal/internal/roster/postgres"
	"github.com/twofourteen/hr-portal/internal/store"
	"github.com/twofourteen/hr-portal/internal/transport/middleware"
	"github.com/twofourteen/hr-portal/internal/transport/rest"
	"github.com/twofourteen/hr-portal/internal/user"
	"github.com/twofourteen/hr-portal/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Redis  *store.Redis
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config

	authRepo := authpg.NewRepository(deps.GormDB)
	authService := auth.NewService(authRepo, cfg.Security, deps.Logger)
	authHandler := auth.NewHandler(authService, strings.HasPrefix(cfg.Server.BaseURL, "https://"))

	userService := user.NewService(authRepo, deps.Logger)

	attendanceRepo := attendancepg.NewAttendanceRepository(deps.GormDB)
	attendanceService := attendance.NewService(attendanceRepo, deps.Logger, nil)

	breakRepo := breakspg.NewBreakRepository(deps.GormDB)
	breakService := breaks.NewService(breakRepo, deps.Logger, nil)

	leaveRepo := leavepg.NewLeaveRepository(deps.GormDB)
	leaveService := leave.NewService(leaveRepo, deps.Logger, int(cfg.Leave.AnnualAllotment), nil)

	rosterRepo := rosterpg.NewRosterRepository(deps.GormDB)
	rosterService := roster.NewService(rosterRepo, deps.Logger, nil)

	handlers := rest.Handlers{
		Auth:       authHandler,
		User:       user.NewHandler(userService),
		Attendance: attendance.NewHandler(attendanceService),
		Breaks:     breaks.NewHandler(breakService),
		Leave:      leave.NewHandler(leaveService),
		Roster:     roster.NewHandler(rosterService),
	}

	// Credential endpoints get a shared limiter when redis is configured,
	// falling back to a per-instance token bucket otherwise.
	var loginLimiter middleware.Limiter
	if deps.Redis != nil {
		loginLimiter = middleware.NewRedisLimiter(deps.Redis.Client, 10, time.Minute)
	} else {
		loginLimiter = middleware.NewTokenBucket(10, 10)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Redis, handlers,
		loginLimiter, cfg.Observability.Metrics, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	var redisStore *store.Redis
	if config.Redis.Addr != "" {
		redisStore = store.NewRedis(config.Redis.Addr)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		GormDB: gormDB,
		Redis:  redisStore,
		Router: chi.NewRouter(),
	}, nil
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

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-open connection pool.
// TranslateError is required so unique index violations surface as
// gorm.ErrDuplicatedKey for the one-active invariants.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
}
