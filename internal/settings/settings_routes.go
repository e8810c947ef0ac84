package settings

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merasports/hub/internal/blob"
	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/pkg/token"
)

func RegisterSettingsRoutes(router *gin.Engine, db *gorm.DB, issuer *token.Issuer, blobs blob.Store) {
	repo := NewSettingsRepository(db)
	controller := NewSettingsController(repo, blobs)

	router.GET("/settings", controller.Public)

	admin := router.Group("/admin/settings")
	admin.Use(middleware.RequireAdmin(issuer))
	{
		admin.GET("", controller.Get)
		admin.POST("", controller.Update)
	}
}
