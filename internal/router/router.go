package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/goodman-rb/ai-content-studio/config"
	"github.com/goodman-rb/ai-content-studio/internal/handler"
)

func Setup(
	cfg *config.Config,
	draftHandler *handler.DraftHandler,
	planHandler *handler.PlanHandler,
	settingsHandler *handler.SettingsHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	api := r.Group("/api")
	{
		drafts := api.Group("/drafts")
		{
			drafts.POST("", draftHandler.Create)
			drafts.GET("/:id", draftHandler.Get)
			drafts.POST("/:id/regenerate", draftHandler.Regenerate)
			drafts.POST("/:id/analyze", draftHandler.Analyze)
			drafts.POST("/:id/improve", draftHandler.Improve)
			drafts.POST("/:id/schedule", draftHandler.Schedule)
		}

		plan := api.Group("/plan")
		{
			plan.GET("", planHandler.List)
			plan.GET("/stats", planHandler.Stats)
			plan.GET("/:postID", planHandler.Get)
			plan.PUT("/:postID", planHandler.Update)
			plan.DELETE("/:postID", planHandler.Delete)
		}

		api.GET("/settings", settingsHandler.GetSettings)
		api.PUT("/settings", settingsHandler.UpdateSettings)
		api.GET("/prompts", settingsHandler.ListPrompts)
		api.PUT("/prompts/:promptID", settingsHandler.UpdatePrompt)
		api.GET("/services", settingsHandler.ListServices)
		api.GET("/discounts", settingsHandler.ListDiscounts)
	}

	return r
}
