package handlers

import (
	"net/http"

	"medconnect/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetAvailabilityHandler handles GET /api/doctors/id/:id/availability.
func (h *DoctorHandler) GetAvailabilityHandler(c *gin.Context) {
	summary, err := h.Service.GetAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch availability")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// UpdateAvailabilityHandler handles PUT /api/doctors/id/:id/availability. The
// whole collection is replaced.
func (h *DoctorHandler) UpdateAvailabilityHandler(c *gin.Context) {
	logger := getLogger(c)

	callerID, ok := doctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}

	var req models.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid availability update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	summary, err := h.Service.UpdateAvailability(c.Request.Context(), callerID, c.Param("id"), req.Availability)
	if err != nil {
		respondError(c, err, "Failed to update availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Availability updated successfully",
		"availability": summary,
	})
}
