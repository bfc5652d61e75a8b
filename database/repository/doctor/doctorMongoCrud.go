package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"medconnect/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new doctor document.
func (r *MongoDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if doctor.Availability == nil {
		doctor.Availability = models.Availability{}
	}
	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

// ReplaceAvailability sets the whole array in a single update; there is no
// per-slot patching.
func (r *MongoDoctorRepo) ReplaceAvailability(ctx context.Context, id string, availability models.Availability, updatedAt time.Time) error {
	if availability == nil {
		availability = models.Availability{}
	}
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{
		"availability": availability,
		"updatedAt":    updatedAt,
	}})
}

// UpdateTokenHash records the hash of the latest issued token.
func (r *MongoDoctorRepo) UpdateTokenHash(ctx context.Context, id, tokenHash string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"security.tokenHash": tokenHash}})
}

// Delete removes a doctor document by its ID.
func (r *MongoDoctorRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete doctor with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func (r *MongoDoctorRepo) updateOne(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update doctor with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrDoctorNotFound
	}
	return nil
}
