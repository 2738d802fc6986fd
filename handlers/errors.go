package handlers

import (
	"context"
	"errors"
	"net/http"

	"superapp-api/actions"
	"superapp-api/roles"
	"superapp-api/statemachine"

	"github.com/gin-gonic/gin"
)

// statusFor maps a domain error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, actions.ErrValidation), errors.Is(err, roles.ErrUnknownCategory):
		return http.StatusBadRequest
	case errors.Is(err, actions.ErrInvalidCredentials), errors.Is(err, roles.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, actions.ErrForbidden),
		errors.Is(err, actions.ErrNotAssigned),
		errors.Is(err, roles.ErrViewNotAllowed),
		errors.Is(err, roles.ErrActionNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, actions.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, actions.ErrDuplicateEmail),
		errors.Is(err, actions.ErrAlreadyClaimed),
		errors.Is(err, actions.ErrPartnerBusy):
		return http.StatusConflict
	case errors.Is(err, statemachine.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
