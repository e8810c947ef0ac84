package event

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merasports/hub/internal/blob"
	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/pkg/token"
)

// RegisterEventRoutes wires the public event surface plus the
// admin-gated mutation and news/bracket endpoints.
func RegisterEventRoutes(router *gin.Engine, db *gorm.DB, issuer *token.Issuer, blobs blob.Store, registrations RegistrationCleaner) {
	repo := NewEventRepository(db)
	controller := NewEventController(repo, blobs, registrations)

	events := router.Group("/events")
	{
		events.GET("", controller.List)
		events.GET("/:id", controller.Get)
		events.GET("/:id/brackets", controller.Brackets)
		events.GET("/:id/sponsors", controller.Sponsors)

		adminOnly := events.Group("")
		adminOnly.Use(middleware.RequireAdmin(issuer))
		{
			adminOnly.POST("", controller.Create)
			adminOnly.PUT("/:id", controller.Update)
			adminOnly.DELETE("/:id", controller.Delete)
		}
	}

	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin(issuer))
	{
		admin.GET("/news", controller.ListNews)
		admin.POST("/news", controller.CreateNews)
		admin.PUT("/news/:id", controller.UpdateNews)
		admin.DELETE("/news/:id", controller.DeleteNews)

		admin.GET("/brackets", controller.ListAdminBrackets)
		admin.POST("/brackets", controller.SaveBracket)
		admin.DELETE("/brackets/:id", controller.DeleteBracket)
	}
}
