package handlers

import (
	"net/http"
	"strconv"

	"medconnect/models"
	"medconnect/services/doctor"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DoctorHandler serves the doctor account, availability and draft endpoints.
type DoctorHandler struct {
	Service doctor.DoctorService
}

func NewDoctorHandler(svc doctor.DoctorService) *DoctorHandler {
	return &DoctorHandler{Service: svc}
}

// RegisterDoctorHandler handles POST /api/doctors/register.
func (h *DoctorHandler) RegisterDoctorHandler(c *gin.Context) {
	logger := getLogger(c)
	var req models.DoctorRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid doctor registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateDoctorHandler handles POST /api/doctors/login.
func (h *DoctorHandler) AuthenticateDoctorHandler(c *gin.Context) {
	var req models.DoctorLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListDoctorsHandler handles GET /api/doctors. With ?availableNow=true only
// doctors inside today's window are returned.
func (h *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	availableNow := false
	if raw := c.Query("availableNow"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "availableNow must be a boolean"})
			return
		}
		availableNow = v
	}

	cards, err := h.Service.ListDoctors(c.Request.Context(), availableNow)
	if err != nil {
		respondError(c, err, "Failed to list doctors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": cards, "count": len(cards)})
}

// GetDoctorHandler handles GET /api/doctors/id/:id.
func (h *DoctorHandler) GetDoctorHandler(c *gin.Context) {
	doc, err := h.Service.GetDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch doctor")
		return
	}
	c.JSON(http.StatusOK, doc)
}
