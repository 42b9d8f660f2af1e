package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends the uniform failure envelope. The underlying error
// message is included only when err is non-nil; client-facing 4xx responses
// usually carry just the message.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)

	body := gin.H{"success": false, "message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// respondValidationError sends a 400 envelope for a request-binding failure,
// adding the per-field breakdown when the error carries validator tags.
func respondValidationError(c *gin.Context, message string, err error) {
	attachError(c, err)

	body := gin.H{"success": false, "message": message}
	if fieldErrors := ParseValidationErrors(err); len(fieldErrors) > 0 {
		body["errors"] = fieldErrors
	}
	c.JSON(http.StatusBadRequest, body)
}
