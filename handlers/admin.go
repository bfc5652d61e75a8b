package handlers

import (
	"net/http"

	"medconnect/services/doctor"
	"medconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	DoctorService doctor.DoctorService
}

func NewAdminHandler(ds doctor.DoctorService) *AdminHandler {
	return &AdminHandler{DoctorService: ds}
}

// GetAllDoctorsHandler returns every doctor card.
func (ah *AdminHandler) GetAllDoctorsHandler(c *gin.Context) {
	cards, err := ah.DoctorService.ListDoctors(c.Request.Context(), false)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch all doctors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch doctors"})
		return
	}
	c.JSON(http.StatusOK, cards)
}

// DeleteDoctorHandler removes a doctor together with its availability.
func (ah *AdminHandler) DeleteDoctorHandler(c *gin.Context) {
	id := c.Param("id")
	if err := ah.DoctorService.DeleteDoctor(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete doctor")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted"})
}
