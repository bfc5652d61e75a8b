package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medconnect/models"
	"medconnect/services/availability"
	"medconnect/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// listingProjection keeps credentials out of listing reads.
var listingProjection = bson.M{"security": 0}

func (s *DefaultDoctorService) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListDoctors returns every doctor as a card, or only those available right
// now. The filtered listing reads the cached roster, but availability is
// always evaluated against the current instant.
func (s *DefaultDoctorService) ListDoctors(ctx context.Context, availableNowOnly bool) ([]models.DoctorCard, error) {
	now := s.now()
	if !availableNowOnly {
		doctors, err := s.Repo.GetAll(ctx, listingProjection)
		if err != nil {
			return nil, fmt.Errorf("failed to list doctors: %w", err)
		}
		cards := make([]models.DoctorCard, 0, len(doctors))
		for i := range doctors {
			cards = append(cards, cardFor(listingOf(&doctors[i]), now))
		}
		return cards, nil
	}

	roster, err := s.roster(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]models.DoctorCard, 0)
	for _, l := range roster {
		if availability.IsAvailableNow(l.Availability, now) {
			cards = append(cards, cardFor(l, now))
		}
	}
	return cards, nil
}

func (s *DefaultDoctorService) DeleteDoctor(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	utils.GetLogger().Info("Doctor deleted", zap.String("doctorID", id))
	return nil
}

// RefreshDoctor reloads one doctor's schedule into the cache.
func (s *DefaultDoctorService) RefreshDoctor(ctx context.Context, doctorID string) error {
	if s.Views == nil {
		return nil
	}
	_, err := s.Views.FillAvailability(ctx, doctorID, func(ctx context.Context) (models.Availability, error) {
		return s.storedAvailability(ctx, doctorID)
	})
	if errors.Is(err, ErrDoctorNotFound) {
		s.invalidate(ctx, doctorID)
		return nil
	}
	return err
}

// RebuildAvailableNow reloads the roster behind the available-now listing.
func (s *DefaultDoctorService) RebuildAvailableNow(ctx context.Context) error {
	if s.Views == nil {
		return nil
	}
	_, err := s.Views.FillRoster(ctx, s.loadRoster)
	return err
}

// roster returns the doctors that have at least one enabled slot, from the
// cache while it is fresh.
func (s *DefaultDoctorService) roster(ctx context.Context) ([]models.DoctorListing, error) {
	if s.Views == nil {
		return s.loadRoster(ctx)
	}
	cached, ok, err := s.Views.Roster(ctx)
	if err != nil {
		utils.GetLogger().Error("Failed to read doctor roster", zap.Error(err))
	} else if ok {
		return cached, nil
	}
	return s.Views.FillRoster(ctx, s.loadRoster)
}

func (s *DefaultDoctorService) loadRoster(ctx context.Context) ([]models.DoctorListing, error) {
	doctors, err := s.Repo.GetAll(ctx, listingProjection)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	roster := make([]models.DoctorListing, 0, len(doctors))
	for i := range doctors {
		if schedulable(doctors[i].Availability) {
			roster = append(roster, listingOf(&doctors[i]))
		}
	}
	return roster, nil
}

func schedulable(a models.Availability) bool {
	for _, slot := range a {
		if slot.IsAvailable {
			return true
		}
	}
	return false
}

func listingOf(d *models.Doctor) models.DoctorListing {
	return models.DoctorListing{
		ID:           d.ID,
		FullName:     d.Profile.FullName,
		Specialty:    d.Profile.Specialty,
		Availability: d.Availability,
	}
}

func cardFor(l models.DoctorListing, now time.Time) models.DoctorCard {
	return models.DoctorCard{
		ID:            l.ID,
		FullName:      l.FullName,
		Specialty:     l.Specialty,
		Status:        availability.Status(l.Availability, now),
		NextAvailable: availability.NextAvailable(l.Availability, now),
		TodayHours:    availability.TodayWorkingHours(l.Availability, now),
	}
}

func (s *DefaultDoctorService) invalidate(ctx context.Context, doctorID string) {
	if s.Views == nil {
		return
	}
	if err := s.Views.Invalidate(ctx, doctorID); err != nil {
		utils.GetLogger().Error("Failed to invalidate availability cache", zap.String("doctorID", doctorID), zap.Error(err))
	}
}
