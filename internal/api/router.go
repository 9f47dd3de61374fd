package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dentalcare/clinic-portal/internal/api/handler"
	"github.com/dentalcare/clinic-portal/internal/api/middleware"
	"github.com/dentalcare/clinic-portal/internal/core/domain"
	"github.com/dentalcare/clinic-portal/internal/core/ports"
	"github.com/dentalcare/clinic-portal/internal/core/service"
	mongodb "github.com/dentalcare/clinic-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/dentalcare/clinic-portal/internal/infrastructure/db/redis"
	"github.com/dentalcare/clinic-portal/internal/infrastructure/queue"
	"github.com/dentalcare/clinic-portal/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	sessions ports.SessionStore,
	audit *queue.Dispatcher,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	clinicRepo := mongodb.NewClinicRepository(db)
	patientRepo := mongodb.NewPatientRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	planRepo := mongodb.NewTreatmentPlanRepository(db)
	orderRepo := mongodb.NewTreatmentOrderRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.LoginMaxAttempts, cfg.LoginWindow)

	authService := service.NewAuthService(authRepo, sessions, throttle, audit, cfg.JWTSecret, cfg.TokenTTL, log)
	gate := service.NewGate()
	directory := service.NewDirectoryService(clinicRepo, log)
	aggregator := service.NewSearchAggregator(patientRepo, appointmentRepo, planRepo, orderRepo, log)
	coordinator := service.NewSearchCoordinator(aggregator)

	authHandler := handler.NewAuthHandler(authService)
	navHandler := handler.NewNavHandler(gate, sessions)
	clinicHandler := handler.NewClinicHandler(directory, sessions)
	searchHandler := handler.NewSearchHandler(coordinator, audit)
	recordsHandler := handler.NewRecordsHandler(patientRepo, appointmentRepo, planRepo, orderRepo)

	authRequired := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authRequired)

	// --- Account administration ---
	e.POST("/users", authHandler.Register, authRequired, middleware.RBAC(domain.RoleAdmin))

	// --- Navigation gate (public: pre-login navigation must resolve too) ---
	e.GET("/nav/resolve", navHandler.Resolve)

	// --- Clinic directory ---
	e.GET("/clinic/current", clinicHandler.Current, authRequired)

	// --- Cross-entity search ---
	e.GET("/search", searchHandler.Search, authRequired)

	// --- Record collections ---
	staff := middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor, domain.RoleNurse, domain.RoleRegistrar)
	clinical := middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor, domain.RoleNurse)

	e.GET("/patients", recordsHandler.ListPatients, authRequired, staff)
	e.GET("/appointments", recordsHandler.ListAppointments, authRequired, staff)
	e.GET("/treatment-plans", recordsHandler.ListTreatmentPlans, authRequired, clinical)
	e.GET("/treatment-orders", recordsHandler.ListTreatmentOrders, authRequired, clinical)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
