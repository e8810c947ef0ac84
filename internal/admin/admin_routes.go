package admin

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/internal/notification"
	"github.com/merasports/hub/pkg/token"
)

func RegisterAdminRoutes(router *gin.Engine, db *gorm.DB, issuer *token.Issuer, events EventOwnershipReassigner, registrations RegistrationSource, notifier notification.Notifier) {
	repo := NewAdminRepository(db)
	controller := NewAdminController(repo, events, registrations, notifier)

	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin(issuer))
	{
		admin.GET("/dashboard", controller.Dashboard)
		admin.GET("/players", controller.ListPlayers)
		admin.GET("/players/:id", controller.GetPlayer)
		admin.PUT("/players/:id/approve", controller.ApprovePlayer)
		admin.PUT("/players/:id/reject", controller.RejectPlayer)
	}

	super := router.Group("/admin")
	super.Use(middleware.RequireSuperadmin(issuer))
	{
		super.GET("/admins", controller.ListAdmins)
		super.PUT("/admins/:id/approve", controller.ApproveAdmin)
		super.PUT("/admins/:id/reject", controller.RejectAdmin)
		super.DELETE("/admins/:id", controller.DeleteAdmin)
	}
}
