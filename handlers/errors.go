package handlers

import (
	"errors"
	"net/http"

	"medconnect/services/availability"
	"medconnect/services/doctor"
	"medconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses. Anything unrecognised
// is logged and reported as a 500 with the generic message.
func respondError(c *gin.Context, err error, message string) {
	var verr *availability.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.JSONCodedError(c, http.StatusUnprocessableEntity, verr.Code, verr.Message)
	case errors.Is(err, doctor.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, doctor.ErrDoctorNotFound):
		utils.JSONError(c, http.StatusNotFound, "Doctor not found", "")
	case errors.Is(err, doctor.ErrDraftNotFound):
		utils.JSONError(c, http.StatusNotFound, "Draft not found", err.Error())
	case errors.Is(err, doctor.ErrEmailTaken),
		errors.Is(err, doctor.ErrIdentityTaken),
		errors.Is(err, doctor.ErrDraftConflict):
		utils.JSONError(c, http.StatusConflict, message, err.Error())
	case errors.Is(err, doctor.ErrInvalidCredentials),
		errors.Is(err, doctor.ErrInvalidIdentity):
		utils.JSONError(c, http.StatusUnauthorized, message, err.Error())
	case errors.Is(err, availability.ErrSlotIndex),
		errors.Is(err, availability.ErrUnknownField),
		errors.Is(err, availability.ErrFieldValue):
		utils.JSONError(c, http.StatusBadRequest, message, err.Error())
	case errors.Is(err, doctor.ErrDraftsDisabled),
		errors.Is(err, doctor.ErrIdentityDisabled):
		utils.JSONError(c, http.StatusServiceUnavailable, message, err.Error())
	default:
		getLogger(c).Error(message, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
