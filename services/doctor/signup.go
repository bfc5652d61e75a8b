package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medconnect/models"
	"medconnect/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a doctor account with an empty schedule and issues its
// first token.
func (s *DefaultDoctorService) Register(ctx context.Context, req models.DoctorRegistrationRequest) (*models.DoctorAuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("doctor email and password are required")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("full name is required")
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrDoctorNotFound) {
		return nil, fmt.Errorf("failed to check for existing doctor: %w", err)
	}

	externalUID, err := s.linkedIdentity(ctx, req.IDToken)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	doctor := models.Doctor{
		ID: uuid.New().String(),
		Profile: models.DoctorProfile{
			FullName:  strings.TrimSpace(req.FullName),
			Email:     email,
			Specialty: req.Specialty,
			Bio:       req.Bio,
			Status:    models.DoctorStatusActive,
		},
		Security:     models.DoctorSecurity{PasswordHash: string(hashed)},
		ExternalUID:  externalUID,
		Availability: models.Availability{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	token, expiresAt, err := utils.GenerateToken(doctor.ID, email, s.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}
	doctor.Security.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(ctx, &doctor); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	utils.GetLogger().Info("Doctor registered", zap.String("doctorID", doctor.ID))
	return &models.DoctorAuthResponse{
		ID:        doctor.ID,
		FullName:  doctor.Profile.FullName,
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// linkedIdentity verifies idToken and returns the UID it was issued for. An
// empty token links nothing.
func (s *DefaultDoctorService) linkedIdentity(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", nil
	}
	if s.Identities == nil {
		return "", ErrIdentityDisabled
	}
	uid, err := s.Identities.ExternalUID(ctx, idToken)
	if err != nil || uid == "" {
		return "", ErrInvalidIdentity
	}
	if _, err := s.Repo.GetByExternalUID(ctx, uid); err == nil {
		return "", ErrIdentityTaken
	} else if !errors.Is(err, ErrDoctorNotFound) {
		return "", fmt.Errorf("failed to check linked identity: %w", err)
	}
	return uid, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
