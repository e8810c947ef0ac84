package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/pkg/token"
)

func RegisterTeamRoutes(router *gin.RouterGroup, db *gorm.DB, issuer *token.Issuer) {
	repo := NewTeamRepository(db)
	controller := NewTeamController(repo)

	group := router.Group("/teams")
	group.Use(middleware.RequirePlayer(issuer))
	{
		group.GET("/my-teams", controller.MyTeams)
		group.GET("/player-lookup/:playerId", controller.PlayerLookup)
		group.POST("", controller.Create)
		group.PUT("/:id", controller.Update)
		group.DELETE("/:id", controller.Delete)
	}
}
