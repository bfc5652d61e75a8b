package doctorRepo

import (
	"context"
	"errors"
	"time"

	"medconnect/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrDoctorNotFound is returned when no document matches the lookup.
var ErrDoctorNotFound = errors.New("doctor not found")

// DoctorRepository defines methods for doctor profile data access.
type DoctorRepository interface {
	// Create inserts a new doctor document.
	Create(ctx context.Context, doctor *models.Doctor) error
	// GetByID retrieves a doctor by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	// GetByEmail retrieves a doctor by profile email.
	GetByEmail(ctx context.Context, email string) (*models.Doctor, error)
	// GetByExternalUID retrieves the doctor linked to an external identity.
	GetByExternalUID(ctx context.Context, uid string) (*models.Doctor, error)
	// GetAll retrieves all doctors, optionally restricted by a projection.
	GetAll(ctx context.Context, projection bson.M) ([]models.Doctor, error)
	// ReplaceAvailability overwrites the whole availability array in one write.
	ReplaceAvailability(ctx context.Context, id string, availability models.Availability, updatedAt time.Time) error
	// UpdateTokenHash stores the hash of the doctor's current session token.
	UpdateTokenHash(ctx context.Context, id, tokenHash string) error
	// Delete removes a doctor, and with it the embedded availability.
	Delete(ctx context.Context, id string) error
}
