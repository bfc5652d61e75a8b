package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"medconnect/models"
	"medconnect/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	availabilityKeyPrefix = "availability:doctor:"
	rosterKey             = "availability:roster"
	generationSuffix      = ":gen"
	draftKeyPrefix        = "availabilityDraft:"

	availabilityTTL = 10 * time.Minute
	rosterTTL       = 2 * time.Minute
	generationTTL   = time.Hour
	draftTTL        = 30 * time.Minute
)

// RedisAvailabilityViews stores per-doctor schedules and the roster of
// schedulable doctors as JSON. Each cached key has a generation counter next
// to it; Invalidate bumps the counters and fills watch them.
type RedisAvailabilityViews struct {
	Client *redis.Client
}

func (v *RedisAvailabilityViews) GetAvailability(ctx context.Context, doctorID string) (models.Availability, bool, error) {
	var a models.Availability
	ok, err := getJSON(ctx, v.Client, availabilityKeyPrefix+doctorID, &a)
	return a, ok, err
}

func (v *RedisAvailabilityViews) FillAvailability(ctx context.Context, doctorID string, load func(context.Context) (models.Availability, error)) (models.Availability, error) {
	key := availabilityKeyPrefix + doctorID
	return fillJSON(ctx, v.Client, key, key+generationSuffix, availabilityTTL, load)
}

// Invalidate drops the doctor's entry and the roster, which may list the
// doctor, and bumps both generations so in-flight fills are discarded.
func (v *RedisAvailabilityViews) Invalidate(ctx context.Context, doctorID string) error {
	key := availabilityKeyPrefix + doctorID
	_, err := v.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, gen := range []string{key + generationSuffix, rosterKey + generationSuffix} {
			pipe.Incr(ctx, gen)
			pipe.Expire(ctx, gen, generationTTL)
		}
		pipe.Del(ctx, key, rosterKey)
		return nil
	})
	return err
}

func (v *RedisAvailabilityViews) Roster(ctx context.Context) ([]models.DoctorListing, bool, error) {
	var roster []models.DoctorListing
	ok, err := getJSON(ctx, v.Client, rosterKey, &roster)
	if ok && roster == nil {
		roster = []models.DoctorListing{}
	}
	return roster, ok, err
}

func (v *RedisAvailabilityViews) FillRoster(ctx context.Context, load func(context.Context) ([]models.DoctorListing, error)) ([]models.DoctorListing, error) {
	return fillJSON(ctx, v.Client, rosterKey, rosterKey+generationSuffix, rosterTTL, load)
}

func getJSON(ctx context.Context, client redis.Cmdable, key string, out interface{}) (bool, error) {
	raw, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// fillJSON watches genKey, runs load and writes its result in a MULTI. A bump
// of genKey after the watch started aborts the write, so a value read before
// a concurrent write is never cached after that write's invalidation.
func fillJSON[T any](ctx context.Context, client *redis.Client, key, genKey string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var (
		value   T
		loadErr error
		loaded  bool
	)
	err := client.Watch(ctx, func(tx *redis.Tx) error {
		value, loadErr = load(ctx)
		loaded = true
		if loadErr != nil {
			return loadErr
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, ttl)
			return nil
		})
		return err
	}, genKey)

	if !loaded {
		// WATCH itself failed; serve from the source without caching.
		utils.GetLogger().Error("Failed to watch cache generation", zap.String("key", key), zap.Error(err))
		return load(ctx)
	}
	if loadErr != nil {
		return value, loadErr
	}
	switch {
	case errors.Is(err, redis.TxFailedErr):
		utils.GetLogger().Debug("Discarded stale cache fill", zap.String("key", key))
	case err != nil:
		utils.GetLogger().Error("Failed to fill cache", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

// RedisDraftStore keeps editing sessions for a limited time; an abandoned
// draft simply expires.
type RedisDraftStore struct {
	Client *redis.Client
}

func (d *RedisDraftStore) Save(ctx context.Context, draft *models.AvailabilityDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return d.Client.Set(ctx, draftKeyPrefix+draft.ID, raw, draftTTL).Err()
}

func (d *RedisDraftStore) Get(ctx context.Context, draftID string) (*models.AvailabilityDraft, error) {
	var draft models.AvailabilityDraft
	ok, err := getJSON(ctx, d.Client, draftKeyPrefix+draftID, &draft)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDraftNotFound
	}
	return &draft, nil
}

// Replace is a compare-and-set on the draft version under WATCH.
func (d *RedisDraftStore) Replace(ctx context.Context, draft *models.AvailabilityDraft, expectedVersion int) error {
	key := draftKeyPrefix + draft.ID
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	err = d.Client.Watch(ctx, func(tx *redis.Tx) error {
		var stored models.AvailabilityDraft
		ok, err := getJSON(ctx, tx, key, &stored)
		if err != nil {
			return err
		}
		if !ok {
			return ErrDraftNotFound
		}
		if stored.Version != expectedVersion {
			return ErrDraftConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, draftTTL)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrDraftConflict
	}
	return err
}

func (d *RedisDraftStore) Delete(ctx context.Context, draftID string) error {
	return d.Client.Del(ctx, draftKeyPrefix+draftID).Err()
}
