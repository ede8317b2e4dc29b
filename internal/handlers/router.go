package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/university-service/internal/services"
	"github.com/SAP-F-2025/university-service/internal/utils"
)

// HealthChecker reports whether the service's backends are reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type HandlerManager struct {
	authHandler      *AuthHandler
	studentHandler   *StudentHandler
	professorHandler *ProfessorHandler
	staffHandler     *StaffHandler
	accountHandler   *AccountHandler
	authMiddleware   *JWTAuthMiddleware
	health           HealthChecker
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens TokenValidator,
	logger utils.Logger,
) *HandlerManager {
	export := serviceManager.Export()

	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), logger),
		studentHandler:   NewStudentHandler(serviceManager.Student(), export, logger),
		professorHandler: NewProfessorHandler(serviceManager.Professor(), export, logger),
		staffHandler:     NewStaffHandler(serviceManager.Staff(), export, logger),
		accountHandler:   NewAccountHandler(serviceManager.Accounts(), logger),
		authMiddleware:   NewJWTAuthMiddleware(tokens, logger),
		health:           serviceManager,
	}
}

// accountRoutes is the CRUD surface shared by the role handlers
type accountRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Export(c *gin.Context)
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.NoRoute(NotFoundHandler)

	api := router.Group("/api")

	api.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "online",
			"message": "University Management System API is running",
		})
	})

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", hm.authHandler.Login)
		authGroup.POST("/logout", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Logout)
		authGroup.GET("/me", hm.authMiddleware.AuthMiddleware(), hm.authHandler.Me)
	}

	// Every authenticated account may use the CRUD routes
	protected := api.Group("")
	protected.Use(hm.authMiddleware.AuthMiddleware())
	{
		registerAccountRoutes(protected.Group("/students"), hm.studentHandler)
		registerAccountRoutes(protected.Group("/professors"), hm.professorHandler)
		registerAccountRoutes(protected.Group("/staff"), hm.staffHandler)

		users := protected.Group("/users")
		users.GET("", hm.accountHandler.List)
		users.GET("/", hm.accountHandler.List)
		users.GET("/:id", hm.accountHandler.Get)
		users.DELETE("/:id", hm.accountHandler.Delete)

		protected.GET("/dashboard/stats", hm.accountHandler.Stats)
	}

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := hm.health.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "university-service",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "university-service",
		})
	})
}

// registerAccountRoutes mounts the collection with and without a trailing slash
func registerAccountRoutes(group *gin.RouterGroup, h accountRoutes) {
	group.GET("", h.List)
	group.GET("/", h.List)
	group.POST("", h.Create)
	group.POST("/", h.Create)
	group.GET("/export", h.Export)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}
