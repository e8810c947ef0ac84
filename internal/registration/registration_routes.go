package registration

import (
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"

	"github.com/merasports/hub/internal/blob"
	"github.com/merasports/hub/internal/mailer"
	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/internal/notification"
	"github.com/merasports/hub/internal/team"
	"github.com/merasports/hub/pkg/token"
)

func RegisterRegistrationRoutes(
	router *gin.Engine,
	db *gorm.DB,
	issuer *token.Issuer,
	events EventSource,
	users UserSource,
	resolver *team.Resolver,
	blobs blob.Store,
	notifier notification.Notifier,
	mail mailer.Mailer,
	clock clockwork.Clock,
) RegistrationRepository {
	repo := NewRegistrationRepository(db)
	controller := NewRegistrationController(repo, events, users, resolver, blobs, notifier, mail, clock)

	player := router.Group("/registrations")
	player.Use(middleware.RequirePlayer(issuer))
	{
		player.POST("/manual-payment", controller.SubmitManualPayment)
		player.GET("/my", controller.MyRegistrations)
	}

	admin := router.Group("/admin/registrations")
	admin.Use(middleware.RequireAdmin(issuer))
	{
		admin.GET("", controller.List)
		admin.PUT("/:id/status", controller.UpdateStatus)
		admin.PUT("/bulk-status", controller.BulkUpdateStatus)
	}

	return repo
}
