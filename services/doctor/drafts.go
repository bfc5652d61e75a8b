package doctor

import (
	"context"
	"errors"

	"medconnect/models"
	"medconnect/services/availability"
	"medconnect/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// draftEditAttempts bounds retries when concurrent requests edit one draft.
const draftEditAttempts = 3

// StartDraft opens an editing session seeded from the stored schedule.
func (s *DefaultDoctorService) StartDraft(ctx context.Context, doctorID string) (*models.AvailabilityDraft, error) {
	if s.Drafts == nil {
		return nil, ErrDraftsDisabled
	}
	doctor, err := s.Repo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	editor := availability.NewEditor(doctor.Availability)
	now := s.now()
	draft := &models.AvailabilityDraft{
		ID:        uuid.New().String(),
		DoctorID:  doctorID,
		State:     string(editor.State()),
		Slots:     editor.Slots(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *DefaultDoctorService) GetDraft(ctx context.Context, doctorID, draftID string) (*models.AvailabilityDraft, error) {
	draft, _, err := s.loadDraft(ctx, doctorID, draftID)
	return draft, err
}

func (s *DefaultDoctorService) AddDraftSlot(ctx context.Context, doctorID, draftID string) (*models.AvailabilityDraft, error) {
	return s.editDraft(ctx, doctorID, draftID, func(e *availability.Editor) error {
		e.AddSlot()
		return nil
	})
}

func (s *DefaultDoctorService) RemoveDraftSlot(ctx context.Context, doctorID, draftID string, index int) (*models.AvailabilityDraft, error) {
	return s.editDraft(ctx, doctorID, draftID, func(e *availability.Editor) error {
		return e.RemoveSlot(index)
	})
}

func (s *DefaultDoctorService) UpdateDraftSlot(ctx context.Context, doctorID, draftID string, index int, field string, value interface{}) (*models.AvailabilityDraft, error) {
	return s.editDraft(ctx, doctorID, draftID, func(e *availability.Editor) error {
		return e.UpdateSlot(index, availability.SlotField(field), value)
	})
}

// PreviewDraft renders the weekly schedule a save would produce.
func (s *DefaultDoctorService) PreviewDraft(ctx context.Context, doctorID, draftID string) ([]models.DaySchedule, error) {
	_, editor, err := s.loadDraft(ctx, doctorID, draftID)
	if err != nil {
		return nil, err
	}
	return editor.Preview(), nil
}

// SaveDraft validates the session and persists it. A rejected save keeps the
// draft with its rows intact and records the failure on it.
func (s *DefaultDoctorService) SaveDraft(ctx context.Context, doctorID, draftID string) (*models.AvailabilitySummary, error) {
	draft, editor, err := s.loadDraft(ctx, doctorID, draftID)
	if err != nil {
		return nil, err
	}

	validated, saveErr := editor.Save()
	if saveErr != nil {
		expected := draft.Version
		draft.State = string(editor.State())
		draft.LastError = saveErr.Error()
		draft.UpdatedAt = s.now()
		draft.Version++
		if err := s.Drafts.Replace(ctx, draft, expected); err != nil {
			utils.GetLogger().Error("Failed to store rejected draft", zap.String("draftID", draftID), zap.Error(err))
		}
		return nil, saveErr
	}

	summary, err := s.persist(ctx, doctorID, validated)
	if err != nil {
		return nil, err
	}
	if err := s.Drafts.Delete(ctx, draftID); err != nil {
		utils.GetLogger().Error("Failed to delete saved draft", zap.String("draftID", draftID), zap.Error(err))
	}
	return summary, nil
}

func (s *DefaultDoctorService) DiscardDraft(ctx context.Context, doctorID, draftID string) error {
	if _, _, err := s.loadDraft(ctx, doctorID, draftID); err != nil {
		return err
	}
	return s.Drafts.Delete(ctx, draftID)
}

func (s *DefaultDoctorService) loadDraft(ctx context.Context, doctorID, draftID string) (*models.AvailabilityDraft, *availability.Editor, error) {
	if s.Drafts == nil {
		return nil, nil, ErrDraftsDisabled
	}
	draft, err := s.Drafts.Get(ctx, draftID)
	if err != nil {
		return nil, nil, err
	}
	if draft.DoctorID != doctorID {
		return nil, nil, ErrForbidden
	}
	editor := availability.RestoreEditor(draft.Slots, availability.State(draft.State))
	return draft, editor, nil
}

// editDraft applies one edit and stores the result. A failed edit leaves the
// stored draft unchanged. When another request stored an edit in between, the
// edit is replayed on the newer draft.
func (s *DefaultDoctorService) editDraft(ctx context.Context, doctorID, draftID string, edit func(*availability.Editor) error) (*models.AvailabilityDraft, error) {
	for attempt := 0; attempt < draftEditAttempts; attempt++ {
		draft, editor, err := s.loadDraft(ctx, doctorID, draftID)
		if err != nil {
			return nil, err
		}
		if err := edit(editor); err != nil {
			return nil, err
		}
		expected := draft.Version
		draft.Slots = editor.Slots()
		draft.State = string(editor.State())
		draft.LastError = ""
		draft.UpdatedAt = s.now()
		draft.Version++

		err = s.Drafts.Replace(ctx, draft, expected)
		if errors.Is(err, ErrDraftConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return draft, nil
	}
	return nil, ErrDraftConflict
}
