package doctorRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "doctors"

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo binds the repository to db and makes sure its indexes exist.
func NewMongoDoctorRepo(db *mongo.Database) (*MongoDoctorRepo, error) {
	r := &MongoDoctorRepo{coll: db.Collection(collectionName)}
	if err := r.ensureIndexes(); err != nil {
		return nil, err
	}
	return r, nil
}

func newContext(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, d)
}

func (r *MongoDoctorRepo) findOne(ctx context.Context, filter bson.M, what string) (*models.Doctor, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, filter).Decode(&doctor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to fetch doctor by %s: %w", what, err)
	}
	return &doctor, nil
}

func (r *MongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"id": id}, "id")
}

func (r *MongoDoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"profile.email": email}, "email")
}

func (r *MongoDoctorRepo) GetByExternalUID(ctx context.Context, uid string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"externalUID": uid}, "external uid")
}

func (r *MongoDoctorRepo) GetAll(ctx context.Context, projection bson.M) ([]models.Doctor, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "profile.fullName", Value: 1}})
	if projection != nil {
		opts.SetProjection(projection)
	}
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	for cursor.Next(ctx) {
		var d models.Doctor
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return doctors, nil
}
