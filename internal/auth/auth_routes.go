package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"

	"github.com/merasports/hub/config"
	"github.com/merasports/hub/internal/blob"
	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/internal/user"
	"github.com/merasports/hub/pkg/token"
)

// RegisterAuthRoutes wires registration, login and OTP endpoints and
// returns the user repository for other packages to reuse.
func RegisterAuthRoutes(router *gin.Engine, db *gorm.DB, issuer *token.Issuer, cfg *config.Config, blobs blob.Store, clock clockwork.Clock) UserRepository {
	repo := NewUserRepository(db)
	controller := NewAuthController(repo, issuer, cfg, blobs, clock)

	group := router.Group("/auth")
	{
		group.POST("/register", controller.RegisterPlayer)
		group.POST("/login", controller.LoginPlayer)
		group.POST("/admin/register", controller.RegisterAdmin)
		group.POST("/admin/login", controller.LoginAdmin)
		group.POST("/send-otp", controller.SendOTP)
		group.POST("/verify-otp", controller.VerifyOTP)

		// Any authenticated principal may read its own identity.
		group.GET("/me", middleware.RequireRole(issuer, user.RolePlayer, user.RoleAdmin, user.RoleSuperadmin), controller.Me)
	}

	return repo
}
