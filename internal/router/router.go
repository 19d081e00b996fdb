package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beacon-dev/beacon/internal/handlers"
	"github.com/beacon-dev/beacon/internal/middleware"
	"github.com/beacon-dev/beacon/internal/services"
)

func NewRouter(db *gorm.DB, logger *zap.Logger) *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	orgHandler := handlers.NewOrganizationHandler(services.NewOrganizationService(db, logger), logger)
	pageService := services.NewStatusPageService(db, logger)
	pageHandler := handlers.NewStatusPageHandler(pageService, logger)
	publicHandler := handlers.NewPublicHandler(pageService, logger)
	componentHandler := handlers.NewComponentHandler(services.NewComponentService(db, logger), logger)
	incidentHandler := handlers.NewIncidentHandler(services.NewIncidentService(db, logger), logger)
	maintenanceHandler := handlers.NewMaintenanceHandler(services.NewMaintenanceService(db, logger), logger)
	authHandler := handlers.NewAuthHandler(db, logger)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/public/:slug", publicHandler.GetPage)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthMiddleware(), authHandler.Me)
		}

		orgs := api.Group("/organizations", middleware.AuthMiddleware())
		{
			orgs.POST("", orgHandler.Create)
			orgs.GET("", orgHandler.List)
			orgs.POST("/:org_id/members", orgHandler.AddMember)

			orgs.POST("/:org_id/status-pages", pageHandler.Create)
			orgs.GET("/:org_id/status-pages", pageHandler.List)
		}

		pages := api.Group("/status-pages", middleware.AuthMiddleware())
		{
			pages.GET("/:page_id", pageHandler.Get)
			pages.PATCH("/:page_id", pageHandler.Update)
			pages.DELETE("/:page_id", pageHandler.Delete)

			pages.POST("/:page_id/components", componentHandler.Create)
			pages.GET("/:page_id/components", componentHandler.List)

			pages.POST("/:page_id/incidents", incidentHandler.Create)
			pages.GET("/:page_id/incidents", incidentHandler.List)

			pages.POST("/:page_id/maintenance-windows", maintenanceHandler.Create)
			pages.GET("/:page_id/maintenance-windows", maintenanceHandler.List)
		}

		components := api.Group("/components", middleware.AuthMiddleware())
		{
			components.PATCH("/:component_id", componentHandler.Update)
			components.DELETE("/:component_id", componentHandler.Delete)
		}

		incidents := api.Group("/incidents", middleware.AuthMiddleware())
		{
			incidents.PATCH("/:incident_id", incidentHandler.Update)
			incidents.POST("/:incident_id/updates", incidentHandler.CreateUpdate)
			incidents.GET("/:incident_id/updates", incidentHandler.ListUpdates)
		}

		windows := api.Group("/maintenance-windows", middleware.AuthMiddleware())
		{
			windows.PATCH("/:window_id", maintenanceHandler.Update)
		}
	}

	return r
}
