package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jwalitptl/clinic-api/internal/handler/appointment"
	"github.com/jwalitptl/clinic-api/internal/handler/auth"
	"github.com/jwalitptl/clinic-api/internal/handler/clinic"
	"github.com/jwalitptl/clinic-api/internal/handler/doctor"
	"github.com/jwalitptl/clinic-api/internal/handler/health"
	"github.com/jwalitptl/clinic-api/internal/handler/patient"
	"github.com/jwalitptl/clinic-api/internal/handler/report"
	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/pkg/logger"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CacheTTL       time.Duration
	CORSConfig     middleware.CORSConfig
	ReleaseMode    bool
}

type Handlers struct {
	Auth        *auth.Handler
	Clinic      *clinic.Handler
	Doctor      *doctor.Handler
	Patient     *patient.Handler
	Appointment *appointment.Handler
	Report      *report.Handler
	Health      *health.Handler
}

type Router struct {
	engine   *gin.Engine
	authMW   *middleware.AuthMiddleware
	handlers Handlers
	cache    *middleware.ResponseCache
}

func NewRouter(
	authMW *middleware.AuthMiddleware,
	handlers Handlers,
	m *metrics.Metrics,
	log *logger.Logger,
	config Config,
) *Router {
	if config.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.Metrics(m),
		middleware.CORS(config.CORSConfig),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: config.RateLimitRPS,
		Burst:             config.RateLimitBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return &Router{
		engine:   engine,
		authMW:   authMW,
		handlers: handlers,
		cache:    middleware.NewResponseCache(config.CacheTTL),
	}
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	api.GET("/health", r.handlers.Health.Health)
	api.GET("/health/ready", r.handlers.Health.Ready)

	api.POST("/auth/login", r.handlers.Auth.Login)

	protected := api.Group("")
	protected.Use(r.authMW.Authenticate())

	r.setupClinicRoutes(protected)
	r.setupDoctorRoutes(protected)
	r.setupPatientRoutes(protected)
	r.setupAppointmentRoutes(protected)
	r.setupReportRoutes(protected)
}

func (r *Router) setupClinicRoutes(rg *gin.RouterGroup) {
	clinics := rg.Group("/clinics")
	{
		clinics.POST("", r.handlers.Clinic.CreateClinic)
		clinics.GET("", r.handlers.Clinic.ListClinics)
		clinics.GET("/:id", r.handlers.Clinic.GetClinic)
		clinics.PUT("/:id", r.handlers.Clinic.UpdateClinic)
		clinics.DELETE("/:id", r.handlers.Clinic.DeleteClinic)

		clinics.POST("/:id/rooms", r.handlers.Clinic.CreateRoom)
		clinics.GET("/:id/rooms", r.handlers.Clinic.ListRooms)

		clinics.POST("/:id/schedules", r.handlers.Clinic.CreateSchedule)
		clinics.GET("/:id/schedules", r.handlers.Clinic.ListSchedules)
		clinics.DELETE("/:id/schedules/:scheduleId", r.handlers.Clinic.DeleteSchedule)

		clinics.GET("/:id/occupancy", r.handlers.Clinic.Occupancy)
	}
}

func (r *Router) setupDoctorRoutes(rg *gin.RouterGroup) {
	doctors := rg.Group("/doctors")
	{
		doctors.POST("", r.handlers.Doctor.CreateDoctor)
		doctors.GET("", r.handlers.Doctor.ListDoctors)
		doctors.GET("/:id", r.handlers.Doctor.GetDoctor)
		doctors.DELETE("/:id", r.handlers.Doctor.DeleteDoctor)

		doctors.POST("/:id/schedules", r.handlers.Doctor.CreateSchedule)
		doctors.GET("/:id/schedules", r.handlers.Doctor.ListSchedules)
		doctors.DELETE("/:id/schedules/:scheduleId", r.handlers.Doctor.DeleteSchedule)

		doctors.POST("/:id/exceptions", r.handlers.Doctor.CreateException)
		doctors.GET("/:id/exceptions", r.handlers.Doctor.ListExceptions)
		doctors.DELETE("/:id/exceptions/:exceptionId", r.handlers.Doctor.DeleteException)

		// Availability reads are cached briefly; staleness resolves by TTL.
		doctors.GET("/:id/availability", r.cache.Cache(), r.handlers.Doctor.Availability)
		doctors.GET("/:id/slots", r.cache.Cache(), r.handlers.Doctor.Slots)
		doctors.GET("/:id/occupancy", r.handlers.Doctor.Occupancy)
	}
}

func (r *Router) setupPatientRoutes(rg *gin.RouterGroup) {
	patients := rg.Group("/patients")
	{
		patients.POST("", r.handlers.Patient.CreatePatient)
		patients.GET("", r.handlers.Patient.ListPatients)
		patients.GET("/:id", r.handlers.Patient.GetPatient)
		patients.PUT("/:id", r.handlers.Patient.UpdatePatient)
		patients.DELETE("/:id", r.handlers.Patient.DeletePatient)
	}
}

func (r *Router) setupAppointmentRoutes(rg *gin.RouterGroup) {
	appointments := rg.Group("/appointments")
	{
		appointments.POST("", r.handlers.Appointment.CreateAppointment)
		appointments.GET("", r.handlers.Appointment.ListAppointments)
		appointments.GET("/statuses", r.handlers.Appointment.Statuses)
		appointments.GET("/income", r.handlers.Appointment.EstimatedIncome)
		appointments.GET("/:id", r.handlers.Appointment.GetAppointment)
		appointments.DELETE("/:id", r.handlers.Appointment.DeleteAppointment)
		appointments.POST("/:id/transition", r.handlers.Appointment.Transition)
		appointments.GET("/:id/transitions", r.handlers.Appointment.AvailableTransitions)
		appointments.POST("/:id/reschedule", r.handlers.Appointment.Reschedule)
	}

	types := rg.Group("/appointment-types")
	{
		types.POST("", r.handlers.Appointment.CreateType)
		types.GET("", r.handlers.Appointment.ListTypes)
		types.DELETE("/:id", r.handlers.Appointment.DeleteType)
	}
}

func (r *Router) setupReportRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/clinics/:id/reports")
	{
		reports.GET("/overview", r.handlers.Report.Overview)
		reports.GET("/today", r.handlers.Report.Today)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
