// Package identity resolves a bearer token to the doctor it belongs to.
package identity

import (
	"context"
	"errors"

	"medconnect/models"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenRevoked  = errors.New("token no longer valid for this doctor")
	ErrUnknownDoctor = errors.New("no doctor linked to this identity")
)

// Resolver maps a bearer token to a doctor ID.
type Resolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// DoctorLookup is the slice of the doctor repository the resolvers need.
type DoctorLookup interface {
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	GetByExternalUID(ctx context.Context, uid string) (*models.Doctor, error)
}
