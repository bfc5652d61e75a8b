package doctor

import (
	"context"
	"errors"
	"fmt"

	"medconnect/models"
	"medconnect/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenRevoker drops a token hash from the auth cache so a superseded token
// stops resolving immediately.
type TokenRevoker interface {
	Forget(ctx context.Context, tokenHash string) error
}

// Authenticate checks credentials and rotates the doctor's token.
func (s *DefaultDoctorService) Authenticate(ctx context.Context, req models.DoctorLoginRequest) (*models.DoctorAuthResponse, error) {
	doctor, err := s.Repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, ErrDoctorNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		utils.GetLogger().Error("Failed to fetch doctor", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.Security.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateToken(doctor.ID, doctor.Profile.Email, s.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}
	if err := s.Repo.UpdateTokenHash(ctx, doctor.ID, utils.HashToken(token)); err != nil {
		return nil, fmt.Errorf("failed to store token hash: %w", err)
	}

	if s.Tokens != nil && doctor.Security.TokenHash != "" {
		if err := s.Tokens.Forget(ctx, doctor.Security.TokenHash); err != nil {
			utils.GetLogger().Error("Failed to clear auth cache entry", zap.String("doctorID", doctor.ID), zap.Error(err))
		}
	}

	return &models.DoctorAuthResponse{
		ID:        doctor.ID,
		FullName:  doctor.Profile.FullName,
		Email:     doctor.Profile.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
