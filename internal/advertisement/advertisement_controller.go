package advertisement

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/merasports/hub/internal/blob"
	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/pkg/responses"
)

type AdvertisementController struct {
	repo  AdvertisementRepository
	blobs blob.Store
}

func NewAdvertisementController(repo AdvertisementRepository, blobs blob.Store) *AdvertisementController {
	return &AdvertisementController{repo: repo, blobs: blobs}
}

// @Summary      List active advertisements
// @Tags         Advertisements
// @Produce      json
// @Param        placement query string false "Placement filter"
// @Success      200 {object} responses.SuccessResponse
// @Router       /advertisements [get]
func (ac *AdvertisementController) ListActive(c *gin.Context) {
	ads, err := ac.repo.ListActive(c.Query("placement"))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch advertisements")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"advertisements": ads})
}

func (ac *AdvertisementController) ListAll(c *gin.Context) {
	ads, err := ac.repo.ListAll()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch advertisements")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"advertisements": ads})
}

func (ac *AdvertisementController) Create(c *gin.Context) {
	adminID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	ad := &Advertisement{
		UserID:    adminID,
		Title:     req.Title,
		LinkURL:   req.LinkURL,
		Placement: req.Placement,
		IsActive:  true,
	}
	if ad.Placement == "" {
		ad.Placement = "home"
	}
	if req.IsActive != nil {
		ad.IsActive = *req.IsActive
	}
	if url, err := blob.PutDataURL(ac.blobs, req.Image, "ads"); err == nil {
		ad.ImageURL = url
	} else {
		log.Warn().Err(err).Msg("advertisement image upload failed")
	}

	if err := ac.repo.Create(ad); err != nil {
		responses.InternalServerError(c, "Failed to create advertisement")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Advertisement created", gin.H{"advertisement": ad})
}

func (ac *AdvertisementController) Update(c *gin.Context) {
	ad, ok := ac.adByParam(c)
	if !ok {
		return
	}

	var req AdvertisementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	ad.Title = req.Title
	ad.LinkURL = req.LinkURL
	if req.Placement != "" {
		ad.Placement = req.Placement
	}
	if req.IsActive != nil {
		ad.IsActive = *req.IsActive
	}
	if req.Image != "" {
		if url, err := blob.PutDataURL(ac.blobs, req.Image, "ads"); err == nil && url != "" {
			ad.ImageURL = url
		}
	}

	if err := ac.repo.Update(ad); err != nil {
		responses.InternalServerError(c, "Failed to update advertisement")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Advertisement updated", gin.H{"advertisement": ad})
}

func (ac *AdvertisementController) Delete(c *gin.Context) {
	ad, ok := ac.adByParam(c)
	if !ok {
		return
	}
	if err := ac.repo.Delete(ad.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete advertisement")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Advertisement deleted", nil)
}

func (ac *AdvertisementController) adByParam(c *gin.Context) (*Advertisement, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid advertisement id")
		return nil, false
	}
	ad, err := ac.repo.GetByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch advertisement")
		return nil, false
	}
	if ad == nil {
		responses.NotFound(c, "Advertisement")
		return nil, false
	}
	return ad, true
}
