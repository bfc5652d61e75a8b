package handlers

import (
	"net/http"
	"strconv"

	"medconnect/models"

	"github.com/gin-gonic/gin"
)

// draftRequest resolves the caller and the draft ID, writing the error
// response itself when either is missing.
func draftRequest(c *gin.Context) (callerID, draftID string, ok bool) {
	callerID, ok = doctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return "", "", false
	}
	return callerID, c.Param("draftID"), true
}

func slotIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot index must be an integer"})
		return 0, false
	}
	return index, true
}

// StartDraftHandler handles POST /api/doctors/availability/drafts.
func (h *DoctorHandler) StartDraftHandler(c *gin.Context) {
	callerID, ok := doctorID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}
	draft, err := h.Service.StartDraft(c.Request.Context(), callerID)
	if err != nil {
		respondError(c, err, "Failed to start draft")
		return
	}
	c.JSON(http.StatusCreated, draft)
}

func (h *DoctorHandler) GetDraftHandler(c *gin.Context) {
	callerID, draftID, ok := draftRequest(c)
	if !ok {
		return
	}
	draft, err := h.Service.GetDraft(c.Request.Context(), callerID, draftID)
	if err != nil {
		respondError(c, err, "Failed to fetch draft")
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *DoctorHandler) AddDraftSlotHandler(c *gin.Context) {
	callerID, draftID, ok := draftRequest(c)
	if !ok {
		return
	}
	draft, err := h.Service.AddDraftSlot(c.Request.Context(), callerID, draftID)
	if err != nil {
		respondError(c, err, "Failed to add slot")
		return
	}
	c.JSON(http.StatusOK, draft)
}

// UpdateDraftSlotHandler handles PATCH .../slots/:index with a
// {"field": ..., "value": ...} body.
func (h *DoctorHandler) UpdateDraftSlotHandler(c *gin.Context) {
	callerID, draftID, ok := draftRequest(c)
	if !ok {
		return
	}
	index, ok := slotIndex(c)
	if !ok {
		return
	}
	var req models.UpdateDraftSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	draft, err := h.Service.UpdateDraftSlot(c.Request.Context(), callerID, draftID, index, req.Field, req.Value)
	if err != nil {
		respondError(c, err, "Failed to update slot")
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *DoctorHandler) RemoveDraftSlotHandler(c *gin.Context) {
	callerID, draftID, ok := draftRequest(c)
	if !ok {
		return
	}
	index, ok := slotIndex(c)
	if !ok {
		return
	}
	draft, err := h.Service.RemoveDraftSlot(c.Request.Context(), callerID, draftID, index)
	if err != nil {
		respondError(c, err, "Failed to remove slot")
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *DoctorHandler) PreviewDraftHandler(c *gin.Context) {
	callerID, draftID, ok := draftRequest(c)
	if !ok {
		return
	}
	week, err := h.Service.PreviewDraft(c.Request.Context(), callerID, draftID)
	if err != nil {
		respondError(c, err, "Failed to preview draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeklySchedule": week})
}

// SaveDraftHandler validates and persists the draft. A rejected save answers
// 422 and leaves the draft open for further edits.
func (h *DoctorHandler) SaveDraftHandler(c *gin.Context) {
	callerID, draftID, ok := draftRequest(c)
	if !ok {
		return
	}
	summary, err := h.Service.SaveDraft(c.Request.Context(), callerID, draftID)
	if err != nil {
		respondError(c, err, "Failed to save draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Availability updated successfully",
		"availability": summary,
	})
}

func (h *DoctorHandler) DiscardDraftHandler(c *gin.Context) {
	callerID, draftID, ok := draftRequest(c)
	if !ok {
		return
	}
	if err := h.Service.DiscardDraft(c.Request.Context(), callerID, draftID); err != nil {
		respondError(c, err, "Failed to discard draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft discarded"})
}
