package doctor

import (
	"context"
	"fmt"
	"time"

	doctorRepo "medconnect/database/repository/doctor"
	"medconnect/models"
)

// AvailabilityViews caches read-side availability data. The cache holds raw
// slots only; anything that depends on the current time is evaluated by the
// caller on every read.
//
// The Fill methods run load and cache its result, unless Invalidate was
// called for the same data while load was running. Load errors are returned
// as is; cache write failures are not errors.
type AvailabilityViews interface {
	GetAvailability(ctx context.Context, doctorID string) (models.Availability, bool, error)
	FillAvailability(ctx context.Context, doctorID string, load func(context.Context) (models.Availability, error)) (models.Availability, error)
	Invalidate(ctx context.Context, doctorID string) error
	Roster(ctx context.Context) ([]models.DoctorListing, bool, error)
	FillRoster(ctx context.Context, load func(context.Context) ([]models.DoctorListing, error)) ([]models.DoctorListing, error)
}

// DraftStore persists editing sessions between requests. Replace stores draft
// only if the stored version still equals expectedVersion and returns
// ErrDraftConflict otherwise.
type DraftStore interface {
	Save(ctx context.Context, draft *models.AvailabilityDraft) error
	Get(ctx context.Context, draftID string) (*models.AvailabilityDraft, error)
	Replace(ctx context.Context, draft *models.AvailabilityDraft, expectedVersion int) error
	Delete(ctx context.Context, draftID string) error
}

// IdentityVerifier returns the UID a third-party ID token was issued for.
type IdentityVerifier interface {
	ExternalUID(ctx context.Context, idToken string) (string, error)
}

// TaskQueue schedules background refreshes after writes.
type TaskQueue interface {
	EnqueueRefresh(ctx context.Context, doctorID string) error
}

type DoctorService interface {
	// Accounts
	Register(ctx context.Context, req models.DoctorRegistrationRequest) (*models.DoctorAuthResponse, error)
	Authenticate(ctx context.Context, req models.DoctorLoginRequest) (*models.DoctorAuthResponse, error)
	GetDoctor(ctx context.Context, id string) (*models.Doctor, error)
	ListDoctors(ctx context.Context, availableNowOnly bool) ([]models.DoctorCard, error)
	DeleteDoctor(ctx context.Context, id string) error

	// Availability
	GetAvailability(ctx context.Context, doctorID string) (*models.AvailabilitySummary, error)
	UpdateAvailability(ctx context.Context, callerID, doctorID string, slots []models.TimeSlot) (*models.AvailabilitySummary, error)

	// Editing sessions
	StartDraft(ctx context.Context, doctorID string) (*models.AvailabilityDraft, error)
	GetDraft(ctx context.Context, doctorID, draftID string) (*models.AvailabilityDraft, error)
	AddDraftSlot(ctx context.Context, doctorID, draftID string) (*models.AvailabilityDraft, error)
	RemoveDraftSlot(ctx context.Context, doctorID, draftID string, index int) (*models.AvailabilityDraft, error)
	UpdateDraftSlot(ctx context.Context, doctorID, draftID string, index int, field string, value interface{}) (*models.AvailabilityDraft, error)
	PreviewDraft(ctx context.Context, doctorID, draftID string) ([]models.DaySchedule, error)
	SaveDraft(ctx context.Context, doctorID, draftID string) (*models.AvailabilitySummary, error)
	DiscardDraft(ctx context.Context, doctorID, draftID string) error

	// Background
	RefreshDoctor(ctx context.Context, doctorID string) error
	RebuildAvailableNow(ctx context.Context) error
}

// DefaultDoctorService is the production implementation. Views, Drafts,
// Tasks, Tokens and Identities are optional; a nil collaborator disables that
// feature.
type DefaultDoctorService struct {
	Repo       doctorRepo.DoctorRepository
	Views      AvailabilityViews
	Drafts     DraftStore
	Tasks      TaskQueue
	Tokens     TokenRevoker
	Identities IdentityVerifier
	TokenTTL   time.Duration
	Now        func() time.Time
}

func NewDefaultDoctorService(
	repo doctorRepo.DoctorRepository,
	views AvailabilityViews,
	drafts DraftStore,
	tasks TaskQueue,
	tokenTTL time.Duration,
) (*DefaultDoctorService, error) {
	if repo == nil {
		return nil, fmt.Errorf("doctor service initialization error: repository is nil")
	}
	if tokenTTL <= 0 {
		tokenTTL = 72 * time.Hour
	}
	return &DefaultDoctorService{
		Repo:     repo,
		Views:    views,
		Drafts:   drafts,
		Tasks:    tasks,
		TokenTTL: tokenTTL,
		Now:      time.Now,
	}, nil
}

// now is the reference instant for every evaluation: wall-clock local time.
func (s *DefaultDoctorService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

var _ DoctorService = (*DefaultDoctorService)(nil)
