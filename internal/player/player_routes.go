package player

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merasports/hub/internal/blob"
	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/internal/registration"
	"github.com/merasports/hub/internal/team"
	"github.com/merasports/hub/pkg/token"
)

func RegisterPlayerRoutes(
	router *gin.Engine,
	db *gorm.DB,
	issuer *token.Issuer,
	registrations RegistrationSource,
	teams TeamSource,
	resolver *team.Resolver,
	events registration.EventSource,
	blobs blob.Store,
) {
	repo := NewPlayerRepository(db)
	controller := NewPlayerController(repo, registrations, teams, resolver, events, issuer, blobs)

	players := router.Group("/players")
	players.Use(middleware.RequirePlayer(issuer))
	{
		players.GET("/dashboard", controller.Dashboard)
		players.PUT("/profile", controller.UpdateProfile)
		players.PUT("/change-password", controller.ChangePassword)
		players.POST("/check-conflict", controller.CheckConflict)
		players.POST("/check-password", controller.CheckPassword)
		players.DELETE("/account", controller.DeleteAccount)

		players.GET("/family", controller.ListFamily)
		players.POST("/family", controller.AddFamilyMember)
		players.PUT("/family/:id", controller.UpdateFamilyMember)
		players.DELETE("/family/:id", controller.DeleteFamilyMember)
	}
}
