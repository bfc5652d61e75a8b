package handlers

import (
	doctorRepo "medconnect/database/repository/doctor"
	"medconnect/services/doctor"
	"medconnect/services/identity"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and what the routes need to
// guard them.
type HandlerBundle struct {
	DoctorRepo doctorRepo.DoctorRepository
	Resolver   identity.Resolver
	AdminToken string

	// Doctor endpoints
	RegisterDoctorHandler     gin.HandlerFunc
	AuthenticateDoctorHandler gin.HandlerFunc
	ListDoctorsHandler        gin.HandlerFunc
	GetDoctorHandler          gin.HandlerFunc

	// Availability endpoints
	GetAvailabilityHandler    gin.HandlerFunc
	UpdateAvailabilityHandler gin.HandlerFunc

	// Draft endpoints
	StartDraftHandler      gin.HandlerFunc
	GetDraftHandler        gin.HandlerFunc
	AddDraftSlotHandler    gin.HandlerFunc
	UpdateDraftSlotHandler gin.HandlerFunc
	RemoveDraftSlotHandler gin.HandlerFunc
	PreviewDraftHandler    gin.HandlerFunc
	SaveDraftHandler       gin.HandlerFunc
	DiscardDraftHandler    gin.HandlerFunc

	AdminHandler *AdminHandler
}

// NewHandlerBundle wires every handler to svc.
func NewHandlerBundle(svc doctor.DoctorService, repo doctorRepo.DoctorRepository, resolver identity.Resolver, adminToken string) *HandlerBundle {
	dh := NewDoctorHandler(svc)
	return &HandlerBundle{
		DoctorRepo: repo,
		Resolver:   resolver,
		AdminToken: adminToken,

		RegisterDoctorHandler:     dh.RegisterDoctorHandler,
		AuthenticateDoctorHandler: dh.AuthenticateDoctorHandler,
		ListDoctorsHandler:        dh.ListDoctorsHandler,
		GetDoctorHandler:          dh.GetDoctorHandler,

		GetAvailabilityHandler:    dh.GetAvailabilityHandler,
		UpdateAvailabilityHandler: dh.UpdateAvailabilityHandler,

		StartDraftHandler:      dh.StartDraftHandler,
		GetDraftHandler:        dh.GetDraftHandler,
		AddDraftSlotHandler:    dh.AddDraftSlotHandler,
		UpdateDraftSlotHandler: dh.UpdateDraftSlotHandler,
		RemoveDraftSlotHandler: dh.RemoveDraftSlotHandler,
		PreviewDraftHandler:    dh.PreviewDraftHandler,
		SaveDraftHandler:       dh.SaveDraftHandler,
		DiscardDraftHandler:    dh.DiscardDraftHandler,

		AdminHandler: NewAdminHandler(svc),
	}
}
