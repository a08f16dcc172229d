package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/glams-api/internal/service"
)

// Every response wears the same envelope: success plus either payload fields
// or message/error. Upstream error text is passed through in "error".
func fail(c *gin.Context, status int, message string, err error) {
	body := gin.H{"success": false, "message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// failFor maps service errors onto the status taxonomy: validation 400,
// bad credentials 401, missing rows 404, everything else 500.
func failFor(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrBadTransition):
		fail(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "Invalid email or password", nil)
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrOrderNotFound), errors.Is(err, service.ErrAdminNotFound):
		fail(c, http.StatusNotFound, err.Error(), nil)
	default:
		fail(c, http.StatusInternalServerError, fallback, err)
	}
}
