package advertisement

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merasports/hub/internal/blob"
	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/pkg/token"
)

func RegisterAdvertisementRoutes(router *gin.Engine, db *gorm.DB, issuer *token.Issuer, blobs blob.Store) {
	repo := NewAdvertisementRepository(db)
	controller := NewAdvertisementController(repo, blobs)

	router.GET("/advertisements", controller.ListActive)

	admin := router.Group("/admin/advertisements")
	admin.Use(middleware.RequireAdmin(issuer))
	{
		admin.GET("", controller.ListAll)
		admin.POST("", controller.Create)
		admin.PUT("/:id", controller.Update)
		admin.DELETE("/:id", controller.Delete)
	}
}
