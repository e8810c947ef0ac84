package event

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/merasports/hub/internal/blob"
	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/pkg/responses"
)

// RegistrationCleaner removes registrations (and their transactions)
// belonging to an event before the event row itself is deleted.
type RegistrationCleaner interface {
	DeleteByEvent(eventID uint) error
}

type EventController struct {
	repo          EventRepository
	blobs         blob.Store
	registrations RegistrationCleaner
}

func NewEventController(repo EventRepository, blobs blob.Store, registrations RegistrationCleaner) *EventController {
	return &EventController{repo: repo, blobs: blobs, registrations: registrations}
}

// @Summary      Create an event
// @Tags         Events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        event body CreateEventRequest true "Event details"
// @Success      201 {object} responses.SuccessResponse
// @Router       /events [post]
func (ec *EventController) Create(c *gin.Context) {
	adminID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		responses.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		responses.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
		return
	}

	e := &Event{
		Name:             req.Name,
		Sport:            req.Sport,
		Location:         req.Location,
		Venue:            req.Venue,
		StartDate:        startDate,
		EndDate:          endDate,
		StartTime:        req.StartTime,
		Categories:       req.Categories,
		DocumentDesc:     req.DocumentDesc,
		RequiresDocument: req.RequiresDocument,
		CreatedBy:        adminID,
		AssignedTo:       req.AssignedTo,
		Status:           "upcoming",
	}

	// Asset uploads are non-fatal; the event is still usable without them.
	if url, err := blob.PutDataURL(ec.blobs, req.BannerImage, "banners"); err == nil {
		e.BannerURL = url
	} else {
		log.Warn().Err(err).Msg("banner upload failed")
	}
	if url, err := blob.PutDataURL(ec.blobs, req.PaymentQRImage, "payment-qrs"); err == nil {
		e.PaymentQRURL = url
	} else {
		log.Warn().Err(err).Msg("payment QR upload failed")
	}
	if url, err := blob.PutDataURL(ec.blobs, req.DocumentFile, "docs"); err == nil {
		e.DocumentURL = url
	} else {
		log.Warn().Err(err).Msg("document upload failed")
	}
	if len(req.Sponsors) > 0 {
		e.Sponsors = ec.uploadSponsors(req.Sponsors)
	}

	if err := ec.repo.CreateEvent(e); err != nil {
		log.Error().Err(err).Msg("event creation failed")
		responses.InternalServerError(c, "Failed to create event")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Event created", gin.H{"event": e})
}

// @Summary      List events
// @Description  Public. Optional created_by and admin_id (created by OR assigned to) filters.
// @Tags         Events
// @Produce      json
// @Success      200 {object} responses.SuccessResponse
// @Router       /events [get]
func (ec *EventController) List(c *gin.Context) {
	createdBy, _ := strconv.ParseUint(c.Query("created_by"), 10, 32)
	adminID, _ := strconv.ParseUint(c.Query("admin_id"), 10, 32)

	events, err := ec.repo.ListEvents(uint(createdBy), uint(adminID))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch events")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"events": events})
}

// @Summary      Get an event
// @Description  Public. Includes the event's news feed.
// @Tags         Events
// @Produce      json
// @Param        id path int true "Event ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /events/{id} [get]
func (ec *EventController) Get(c *gin.Context) {
	e, ok := ec.eventByParam(c)
	if !ok {
		return
	}
	news, err := ec.repo.ListNewsByEvent(e.ID)
	if err != nil {
		news = []News{}
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"event": e, "news": news})
}

// @Summary      List event brackets
// @Tags         Events
// @Produce      json
// @Param        id path int true "Event ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /events/{id}/brackets [get]
func (ec *EventController) Brackets(c *gin.Context) {
	e, ok := ec.eventByParam(c)
	if !ok {
		return
	}
	brackets, err := ec.repo.ListBracketsByEvent(e.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch brackets")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"brackets": brackets})
}

// @Summary      List event sponsors
// @Tags         Events
// @Produce      json
// @Param        id path int true "Event ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /events/{id}/sponsors [get]
func (ec *EventController) Sponsors(c *gin.Context) {
	e, ok := ec.eventByParam(c)
	if !ok {
		return
	}
	sponsors := e.Sponsors
	if sponsors == nil {
		sponsors = SponsorList{}
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"sponsors": sponsors})
}

// uploadSponsors resolves sponsor logos and media. Values that are
// already hosted URLs pass through; a failed upload drops the asset,
// never the sponsor.
func (ec *EventController) uploadSponsors(inputs []SponsorInput) SponsorList {
	sponsors := make(SponsorList, 0, len(inputs))
	for _, in := range inputs {
		sp := Sponsor{Name: in.Name, Website: in.Website}
		if url, err := blob.PutDataURL(ec.blobs, in.Logo, "sponsors"); err == nil {
			sp.LogoURL = url
		} else {
			log.Warn().Err(err).Str("sponsor", in.Name).Msg("sponsor logo upload failed")
		}
		for _, m := range in.MediaItems {
			url, err := blob.PutDataURL(ec.blobs, m.URL, "sponsor-media")
			if err != nil {
				log.Warn().Err(err).Str("sponsor", in.Name).Msg("sponsor media upload failed")
				continue
			}
			sp.MediaItems = append(sp.MediaItems, SponsorMedia{Type: m.Type, URL: url})
		}
		sponsors = append(sponsors, sp)
	}
	return sponsors
}

// @Summary      Update an event
// @Tags         Events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Event ID"
// @Param        event body UpdateEventRequest true "Fields to update"
// @Success      200 {object} responses.SuccessResponse
// @Router       /events/{id} [put]
func (ec *EventController) Update(c *gin.Context) {
	e, ok := ec.eventByParam(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Sport != nil {
		e.Sport = *req.Sport
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Venue != nil {
		e.Venue = *req.Venue
	}
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			responses.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		e.StartDate = d
	}
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			responses.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		e.EndDate = d
	}
	if req.StartTime != nil {
		e.StartTime = *req.StartTime
	}
	if req.Categories != nil {
		e.Categories = req.Categories
	}
	if req.DocumentDesc != nil {
		e.DocumentDesc = *req.DocumentDesc
	}
	if req.RequiresDocument != nil {
		e.RequiresDocument = *req.RequiresDocument
	}
	if req.AssignedTo != nil {
		e.AssignedTo = req.AssignedTo
	}
	if req.Status != nil {
		e.Status = *req.Status
	}

	if req.BannerImage != nil {
		if url, err := blob.PutDataURL(ec.blobs, *req.BannerImage, "banners"); err == nil && url != "" {
			e.BannerURL = url
		}
	}
	if req.PaymentQRImage != nil {
		if url, err := blob.PutDataURL(ec.blobs, *req.PaymentQRImage, "payment-qrs"); err == nil && url != "" {
			e.PaymentQRURL = url
		}
	}
	if req.DocumentFile != nil {
		if url, err := blob.PutDataURL(ec.blobs, *req.DocumentFile, "docs"); err == nil && url != "" {
			e.DocumentURL = url
		}
	}
	if req.Sponsors != nil {
		e.Sponsors = ec.uploadSponsors(req.Sponsors)
	}

	if err := ec.repo.UpdateEvent(e); err != nil {
		responses.InternalServerError(c, "Failed to update event")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Event updated", gin.H{"event": e})
}

// @Summary      Delete an event
// @Description  Cascades registrations, news and brackets.
// @Tags         Events
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Event ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /events/{id} [delete]
func (ec *EventController) Delete(c *gin.Context) {
	e, ok := ec.eventByParam(c)
	if !ok {
		return
	}

	if err := ec.registrations.DeleteByEvent(e.ID); err != nil {
		log.Error().Err(err).Uint("event_id", e.ID).Msg("registration cascade failed")
		responses.InternalServerError(c, "Failed to delete event registrations")
		return
	}
	if err := ec.repo.DeleteEvent(e.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete event")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Event deleted successfully", nil)
}

// --- News ---

// @Summary      List news for an event
// @Tags         News
// @Produce      json
// @Security     BearerAuth
// @Param        eventId query int true "Event ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /admin/news [get]
func (ec *EventController) ListNews(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Query("eventId"), 10, 32)
	if err != nil || eventID == 0 {
		responses.BadRequest(c, "Event ID is required")
		return
	}
	news, err := ec.repo.ListNewsByEvent(uint(eventID))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch news")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"news": news})
}

func (ec *EventController) CreateNews(c *gin.Context) {
	var req NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}
	n := &News{
		EventID:     req.EventID,
		Title:       req.Title,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		IsHighlight: req.IsHighlight,
	}
	if err := ec.repo.CreateNews(n); err != nil {
		responses.InternalServerError(c, "Failed to add news")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "News added successfully", gin.H{"news": n})
}

func (ec *EventController) UpdateNews(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid news id")
		return
	}
	n, err := ec.repo.GetNewsByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch news")
		return
	}
	if n == nil {
		responses.NotFound(c, "News")
		return
	}

	var req NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}
	n.Title = req.Title
	n.Content = req.Content
	n.ImageURL = req.ImageURL
	n.IsHighlight = req.IsHighlight
	if err := ec.repo.UpdateNews(n); err != nil {
		responses.InternalServerError(c, "Failed to update news")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "News updated successfully", gin.H{"news": n})
}

func (ec *EventController) DeleteNews(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid news id")
		return
	}
	if err := ec.repo.DeleteNews(uint(id)); err != nil {
		responses.InternalServerError(c, "Failed to delete news")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "News deleted successfully", nil)
}

// --- Brackets ---

func (ec *EventController) ListAdminBrackets(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Query("eventId"), 10, 32)
	if err != nil || eventID == 0 {
		responses.BadRequest(c, "Event ID is required")
		return
	}
	brackets, err := ec.repo.ListBracketsByEvent(uint(eventID))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch brackets")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"brackets": brackets})
}

func (ec *EventController) SaveBracket(c *gin.Context) {
	var req BracketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}
	b := &Bracket{
		EventID:   req.EventID,
		Category:  req.Category,
		RoundName: req.RoundName,
		DrawType:  req.DrawType,
		DrawData:  req.DrawData,
	}
	if err := ec.repo.UpsertBracket(b); err != nil {
		responses.InternalServerError(c, "Failed to save bracket")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Bracket/Draw saved successfully", gin.H{"bracket": b})
}

func (ec *EventController) DeleteBracket(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid bracket id")
		return
	}
	if err := ec.repo.DeleteBracket(uint(id)); err != nil {
		responses.InternalServerError(c, "Failed to delete bracket")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Bracket deleted successfully", nil)
}

func (ec *EventController) eventByParam(c *gin.Context) (*Event, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid event id")
		return nil, false
	}
	e, err := ec.repo.GetEventByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch event")
		return nil, false
	}
	if e == nil {
		responses.NotFound(c, "Event")
		return nil, false
	}
	return e, true
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
