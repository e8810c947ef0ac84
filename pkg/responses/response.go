package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/merasports/hub/pkg/apperr"
)

// SuccessResponse represents a standard success JSON response.
type SuccessResponse struct {
	Status  string      `json:"status"`  // "success"
	Message string      `json:"message"` // Optional success message
	Data    interface{} `json:"data"`    // The actual data payload
}

// ErrorResponse represents a standard error JSON response.
type ErrorResponse struct {
	Status  string            `json:"status"`           // "error" or "fail"
	Message string            `json:"message"`          // Error message
	Code    string            `json:"code,omitempty"`   // Stable application error code
	Fields  map[string]string `json:"fields,omitempty"` // Field-level validation hints
}

// SendSuccess sends a standardized success response.
func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	if message == "" {
		message = "Operation completed successfully"
	}
	c.JSON(statusCode, SuccessResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// SendError sends a standardized error response for a plain message.
func SendError(c *gin.Context, statusCode int, message string) {
	statusText := "error"
	if statusCode >= http.StatusInternalServerError {
		statusText = "fail"
	}
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Status:  statusText,
		Message: message,
	})
}

// SendAppError renders an error from the apperr taxonomy with its status,
// code and field hints. Unknown errors become a plain 500.
func SendAppError(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		SendError(c, http.StatusInternalServerError, "An unexpected error occurred on the server")
		return
	}
	status := ae.HTTPStatus()
	statusText := "error"
	if status >= http.StatusInternalServerError {
		statusText = "fail"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Status:  statusText,
		Message: ae.Message,
		Code:    ae.Code,
		Fields:  ae.Fields,
	})
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, resourceName string) {
	SendError(c, http.StatusNotFound, resourceName+" not found")
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request payload or parameters"
	}
	SendError(c, http.StatusBadRequest, message)
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "An unexpected error occurred on the server"
	}
	SendError(c, http.StatusInternalServerError, message)
}
