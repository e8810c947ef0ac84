package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/merasports/hub/config"
	_ "github.com/merasports/hub/docs"
	"github.com/merasports/hub/internal/advertisement"
	"github.com/merasports/hub/internal/auth"
	"github.com/merasports/hub/internal/event"
	"github.com/merasports/hub/internal/notification"
	"github.com/merasports/hub/internal/registration"
	"github.com/merasports/hub/internal/settings"
	"github.com/merasports/hub/internal/team"
	"github.com/merasports/hub/internal/user"
	"github.com/merasports/hub/routes"
)

// @title MeraSports Hub API
// @version 1.0
// @description Backend for the MeraSports event registration platform.
// @host localhost:8088
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.App.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	err = db.AutoMigrate(
		&user.User{}, &user.SchoolDetail{}, &user.FamilyMember{},
		&auth.OTP{},
		&team.Team{},
		&event.Event{}, &event.News{}, &event.Bracket{},
		&registration.Transaction{}, &registration.EventRegistration{},
		&notification.Notification{},
		&advertisement.Advertisement{},
		&settings.PlatformSettings{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate failed")
	}

	r, dispatcher := routes.SetupRoutes(db, cfg)
	defer dispatcher.Close()

	log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("starting server")
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
