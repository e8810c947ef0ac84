package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/merasports/hub/internal/blob"
	"github.com/merasports/hub/pkg/responses"
)

const defaultPlatformName = "MeraSports Hub"

type SettingsController struct {
	repo  SettingsRepository
	blobs blob.Store
}

func NewSettingsController(repo SettingsRepository, blobs blob.Store) *SettingsController {
	return &SettingsController{repo: repo, blobs: blobs}
}

// @Summary      Public platform settings
// @Description  Branding fields only. Falls back to defaults when no
// @Description  settings row exists so the frontend never breaks.
// @Tags         Settings
// @Produce      json
// @Success      200 {object} responses.SuccessResponse
// @Router       /settings [get]
func (sc *SettingsController) Public(c *gin.Context) {
	s, err := sc.repo.Get()
	if err != nil {
		log.Warn().Err(err).Msg("settings lookup failed, serving defaults")
	}
	if s == nil {
		responses.SendSuccess(c, http.StatusOK, "", gin.H{"settings": gin.H{
			"platform_name": defaultPlatformName,
			"logo_url":      "",
		}})
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"settings": gin.H{
		"platform_name": s.PlatformName,
		"logo_url":      s.LogoURL,
		"logo_size":     s.LogoSize,
		"support_email": s.SupportEmail,
	}})
}

// @Summary      Get platform settings
// @Tags         Settings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /admin/settings [get]
func (sc *SettingsController) Get(c *gin.Context) {
	s, err := sc.repo.Get()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch settings")
		return
	}
	if s == nil {
		s = &PlatformSettings{ID: settingsRowID, PlatformName: defaultPlatformName}
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"settings": s})
}

// @Summary      Update platform settings
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        settings body UpdateSettingsRequest true "Settings"
// @Success      200 {object} responses.SuccessResponse
// @Router       /admin/settings [post]
func (sc *SettingsController) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	s, err := sc.repo.Get()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch settings")
		return
	}
	if s == nil {
		s = &PlatformSettings{}
	}

	s.PlatformName = req.PlatformName
	s.SupportEmail = req.SupportEmail
	s.SupportPhone = req.SupportPhone
	if req.LogoSize != nil {
		s.LogoSize = *req.LogoSize
	}
	// Logo upload is non-fatal; the previous logo stays on failure.
	if url, err := blob.PutDataURL(sc.blobs, req.Logo, "branding"); err == nil && url != "" {
		s.LogoURL = url
	} else if err != nil {
		log.Warn().Err(err).Msg("logo upload failed")
	}

	if err := sc.repo.Save(s); err != nil {
		responses.InternalServerError(c, "Failed to save settings")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Settings updated", gin.H{"settings": s})
}
