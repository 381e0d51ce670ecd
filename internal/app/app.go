package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/schoolcore/admin-service/internal/auth"
	"github.com/schoolcore/admin-service/internal/config"
	"github.com/schoolcore/admin-service/internal/delivery/httpd"
	"github.com/schoolcore/admin-service/internal/repository"
	"github.com/schoolcore/admin-service/internal/scheduler"
	"github.com/schoolcore/admin-service/internal/service"
	"github.com/schoolcore/admin-service/internal/worker"
	"github.com/schoolcore/admin-service/pkg/clock"
)

type App struct {
	server    *http.Server
	logger    zerolog.Logger
	config    *config.Config
	db        *sql.DB
	pool      *worker.Pool
	scheduler *scheduler.Scheduler
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	clk, err := clock.New(cfg.Scheduler.Timezone)
	if err != nil {
		return nil, err
	}

	baseRepo := repository.NewPostgresRepository(db, log)
	adminRepo := repository.NewAdminRepository(db, log)
	studentRepo := repository.NewStudentRepository(db, log)
	gradeRepo := repository.NewGradeRepository(db, log)
	classRepo := repository.NewClassRepository(db, log)
	assignmentRepo := repository.NewAssignmentRepository(db, log)
	attendanceRepo := repository.NewAttendanceRepository(db, log)

	authService := service.NewAuthService(adminRepo, cfg.Auth, log)
	adminService := service.NewAdminService(adminRepo, log)
	studentService := service.NewStudentService(studentRepo, log)
	gradeService := service.NewGradeService(gradeRepo, log)
	classService := service.NewClassService(classRepo, gradeRepo, log)
	assignmentService := service.NewAssignmentService(
		assignmentRepo,
		studentRepo,
		gradeRepo,
		classRepo,
		log,
	)
	attendanceService := service.NewAttendanceService(
		attendanceRepo,
		studentRepo,
		gradeRepo,
		classRepo,
		clk,
		log,
	)

	pool := worker.NewPool(cfg.Worker.PoolSize, log)

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(cfg.Scheduler, attendanceService, log)
		if err != nil {
			return nil, err
		}
	}

	handler := httpd.NewHandler(
		authService,
		adminService,
		studentService,
		gradeService,
		classService,
		assignmentService,
		attendanceService,
		pool,
		baseRepo,
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router, auth.Middleware(cfg.Auth.SigningKey, cfg.Auth.Issuer))

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:    server,
		logger:    log,
		config:    cfg,
		db:        db,
		pool:      pool,
		scheduler: sched,
	}, nil
}

func (a *App) Run() error {
	a.pool.Start()
	if a.scheduler != nil {
		a.scheduler.Start()
	}

	a.logger.Info().Msgf("Starting admin service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down admin service...")

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	// Drain in-flight background sweeps before the DB goes away.
	a.pool.Stop()

	err := a.server.Shutdown(ctx)

	if a.db != nil {
		if cerr := a.db.Close(); cerr != nil {
			a.logger.Error().Err(cerr).Msg("Failed to close database connection")
		}
	}

	return err
}
