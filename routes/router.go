package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/merasports/hub/config"
	"github.com/merasports/hub/internal/admin"
	"github.com/merasports/hub/internal/advertisement"
	"github.com/merasports/hub/internal/auth"
	"github.com/merasports/hub/internal/blob"
	"github.com/merasports/hub/internal/event"
	"github.com/merasports/hub/internal/mailer"
	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/internal/notification"
	"github.com/merasports/hub/internal/player"
	"github.com/merasports/hub/internal/registration"
	"github.com/merasports/hub/internal/settings"
	"github.com/merasports/hub/internal/team"
	"github.com/merasports/hub/pkg/token"
)

// SetupRoutes wires every feature package against shared collaborators.
// The returned dispatcher must be closed on shutdown so queued
// notifications drain.
func SetupRoutes(db *gorm.DB, cfg *config.Config) (*gin.Engine, *notification.Dispatcher) {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.App.FrontendURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", middleware.StepUpHeader)
	r.Use(cors.New(corsConfig))

	r.Static("/public", "./public")
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	issuer := token.NewIssuer(cfg.JWT.Secret)
	clock := clockwork.NewRealClock()
	blobs := blob.NewDiskStore(cfg.App.UploadDir, "/public/uploads")
	mail := mailer.NewLogMailer()

	dispatcher := notification.NewDispatcher(notification.NewNotificationRepository(db), 256)

	teamRepo := team.NewTeamRepository(db)
	resolver := team.NewResolver(teamRepo)
	eventRepo := event.NewEventRepository(db)

	auth.RegisterAuthRoutes(r, db, issuer, cfg, blobs, clock)
	regRepo := registration.RegisterRegistrationRoutes(r, db, issuer, eventRepo, teamRepo, resolver, blobs, dispatcher, mail, clock)
	event.RegisterEventRoutes(r, db, issuer, blobs, regRepo)
	team.RegisterTeamRoutes(&r.RouterGroup, db, issuer)
	notification.RegisterNotificationRoutes(&r.RouterGroup, db, issuer)
	admin.RegisterAdminRoutes(r, db, issuer, eventRepo, regRepo, dispatcher)
	advertisement.RegisterAdvertisementRoutes(r, db, issuer, blobs)
	settings.RegisterSettingsRoutes(r, db, issuer, blobs)
	player.RegisterPlayerRoutes(r, db, issuer, regRepo, teamRepo, resolver, eventRepo, blobs)

	return r, dispatcher
}
