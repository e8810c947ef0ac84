package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/pkg/responses"
)

const listLimit = 50

type NotificationController struct {
	repo NotificationRepository
}

func NewNotificationController(repo NotificationRepository) *NotificationController {
	return &NotificationController{repo: repo}
}

// @Summary      List my notifications
// @Description  Returns the last 50 notifications for the current user with an unread count.
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /notifications [get]
func (nc *NotificationController) List(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := nc.repo.ListByUser(userID, listLimit)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch notifications")
		return
	}
	unread, err := nc.repo.CountUnread(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch notifications")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", gin.H{
		"notifications": items,
		"unread_count":  unread,
	})
}

// @Summary      Mark notifications read
// @Tags         Notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body MarkReadRequest true "Single id or mark_all"
// @Success      200 {object} responses.SuccessResponse
// @Router       /notifications/mark-read [post]
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	if req.MarkAll {
		err = nc.repo.MarkAllRead(userID)
	} else if req.NotificationID != 0 {
		err = nc.repo.MarkRead(userID, req.NotificationID)
	} else {
		responses.BadRequest(c, "notification_id or mark_all is required")
		return
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to update notification")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", nil)
}
