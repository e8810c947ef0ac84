package notification

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/internal/user"
	"github.com/merasports/hub/pkg/token"
)

func RegisterNotificationRoutes(router *gin.RouterGroup, db *gorm.DB, issuer *token.Issuer) {
	repo := NewNotificationRepository(db)
	controller := NewNotificationController(repo)

	group := router.Group("/notifications")
	group.Use(middleware.RequireRole(issuer, user.RolePlayer, user.RoleAdmin, user.RoleSuperadmin))
	{
		group.GET("", controller.List)
		group.POST("/mark-read", controller.MarkRead)
	}
}
