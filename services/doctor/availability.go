package doctor

import (
	"context"
	"fmt"

	"medconnect/models"
	"medconnect/services/availability"
	"medconnect/utils"

	"go.uber.org/zap"
)

// GetAvailability evaluates a doctor's schedule at the current instant.
func (s *DefaultDoctorService) GetAvailability(ctx context.Context, doctorID string) (*models.AvailabilitySummary, error) {
	slots, err := s.loadAvailability(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	summary := availability.Summarize(doctorID, slots, s.now())
	return &summary, nil
}

func (s *DefaultDoctorService) loadAvailability(ctx context.Context, doctorID string) (models.Availability, error) {
	if s.Views == nil {
		return s.storedAvailability(ctx, doctorID)
	}
	cached, ok, err := s.Views.GetAvailability(ctx, doctorID)
	if err != nil {
		utils.GetLogger().Error("Error reading availability cache", zap.String("doctorID", doctorID), zap.Error(err))
	} else if ok {
		return cached, nil
	}
	return s.Views.FillAvailability(ctx, doctorID, func(ctx context.Context) (models.Availability, error) {
		return s.storedAvailability(ctx, doctorID)
	})
}

func (s *DefaultDoctorService) storedAvailability(ctx context.Context, doctorID string) (models.Availability, error) {
	doctor, err := s.Repo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return doctor.Availability, nil
}

// UpdateAvailability validates slots and replaces the stored collection.
// Only the owning doctor may write.
func (s *DefaultDoctorService) UpdateAvailability(ctx context.Context, callerID, doctorID string, slots []models.TimeSlot) (*models.AvailabilitySummary, error) {
	if callerID == "" || callerID != doctorID {
		return nil, ErrForbidden
	}
	validated, err := availability.ValidateAndSave(slots)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, doctorID, validated)
}

// persist is the single write path for availability: a whole-collection
// replace followed by cache invalidation and a background refresh.
func (s *DefaultDoctorService) persist(ctx context.Context, doctorID string, slots models.Availability) (*models.AvailabilitySummary, error) {
	now := s.now()
	if err := s.Repo.ReplaceAvailability(ctx, doctorID, slots, now); err != nil {
		return nil, fmt.Errorf("failed to save availability: %w", err)
	}
	s.invalidate(ctx, doctorID)

	if s.Tasks != nil {
		if err := s.Tasks.EnqueueRefresh(ctx, doctorID); err != nil {
			utils.GetLogger().Error("Failed to enqueue availability refresh", zap.String("doctorID", doctorID), zap.Error(err))
		}
	}

	utils.GetLogger().Info("Availability updated", zap.String("doctorID", doctorID), zap.Int("slots", len(slots)))
	summary := availability.Summarize(doctorID, slots, now)
	return &summary, nil
}
