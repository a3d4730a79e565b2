package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/fincontrolapp/fincontrol_backend/cmd/docs"
	portssvc "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/services"
	"github.com/fincontrolapp/fincontrol_backend/internal/middleware"
	"github.com/fincontrolapp/fincontrol_backend/pkg/config"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// bindingErrorMessage flattens request binding failures into a short message.
// Validation tag failures are reported per field instead of dumping the raw
// validator error string at the client.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag()))
		}
		return "Invalid request: " + strings.Join(fields, ", ")
	}
	return "Invalid request format: " + err.Error()
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerHomeRoutes(r)

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services.User)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Cron endpoints authenticate with the shared API key, not a user JWT
	setupCronRoutes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	RegisterTransactionRoutes(v1, services.Transaction)
	registerCategoryRoutes(v1, services.Category)
	registerReportingRoutes(v1, cfg, services.Reporting, services.Projection)
}

// setupCronRoutes configures the /api/cron group used by the scheduler.
func setupCronRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	// One run per minute per IP is plenty for a scheduler.
	rate, _ := limiter.NewRateFromFormatted("10-M")
	cronLimiter := limiter.New(memory.NewStore(), rate)

	cron := r.Group("/api/cron",
		middleware.CronAuthMiddleware(cfg.CronAPIKey),
		middleware.RateLimit(cronLimiter),
	)
	RegisterCronRoutes(cron, cfg, services.Recurrence, services.Notification)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
