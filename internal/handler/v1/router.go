package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/carepulse/carepulse-api/internal/config"
	"github.com/carepulse/carepulse-api/internal/middleware"
	"github.com/carepulse/carepulse-api/internal/service"
	"github.com/carepulse/carepulse-api/pkg/auth"
	"github.com/carepulse/carepulse-api/pkg/metrics"
)

type RouterDeps struct {
	Config       *config.Config
	Log          *zap.Logger
	Metrics      *metrics.Collector
	JWT          *auth.JWTManager
	Users        *service.UserService
	Patients     *service.PatientService
	Appointments *service.AppointmentService
	Gate         *service.GateService
}

// NewRouter builds the full gin engine: middleware chain, operational
// endpoints, the public booking surface, and the admin surface behind
// the session token check.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Observability(deps.Log, deps.Metrics, deps.Config.App.Name))
	r.Use(middleware.CORS(deps.Config.CORS))
	r.Use(middleware.RateLimit(deps.Config.RateLimit))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": deps.Config.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	users := NewUserHandler(deps.Users)
	patients := NewPatientHandler(deps.Patients)
	appointments := NewAppointmentHandler(deps.Appointments)
	admin := NewAdminHandler(deps.Appointments)
	gateH := NewGateHandler(deps.Gate)
	reference := NewReferenceHandler()
	formsH := NewFormsHandler()

	api := r.Group("/api/v1")
	{
		api.POST("/users", users.Create)
		api.GET("/users/:id", users.Get)
		api.POST("/users/:id/devices", users.RegisterDevice)

		api.POST("/patients", patients.Register)
		api.GET("/patients/:userId", patients.GetByUser)

		api.POST("/appointments", appointments.Create)
		api.GET("/appointments/:id", appointments.Get)

		api.POST("/gate/verify", gateH.Verify)
		api.POST("/gate/mount", gateH.Mount)
		api.POST("/gate/close", gateH.Close)

		api.GET("/reference/doctors", reference.Doctors)
		api.GET("/reference/identification-types", reference.IdentificationTypes)
		api.GET("/reference/genders", reference.Genders)

		api.GET("/forms/:name", formsH.Get)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireAdmin(deps.JWT))
	{
		protected.PATCH("/appointments/:id", appointments.Update)
		protected.GET("/admin/appointments", admin.RecentAppointments)
	}

	return r
}
