package api

import (
	"errors"
	"net/http"

	"alcyxob/fitplan/internal/domain"
	"alcyxob/fitplan/internal/service"

	"github.com/gin-gonic/gin"
)

// abortWithServiceError maps service and domain errors to HTTP statuses.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownQuestion),
		errors.Is(err, domain.ErrInvalidOption),
		errors.Is(err, domain.ErrSingleValueExpected),
		errors.Is(err, service.ErrInvalidPlan),
		errors.Is(err, service.ErrUnknownView):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAccessDenied),
		errors.Is(err, service.ErrMonthLocked):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrMonthOutOfRange),
		errors.Is(err, service.ErrUnknownWorkout),
		errors.Is(err, service.ErrUnknownMeal):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTransitionNotPermitted),
		errors.Is(err, service.ErrIdentityLocked),
		errors.Is(err, service.ErrIntakeAlreadyCompleted),
		errors.Is(err, service.ErrPlansNotGenerated):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrGenerationFailed):
		abortWithError(c, http.StatusUnprocessableEntity, "Could not generate your plans, please try again")
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
