package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medconnect/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	authCachePrefix = "auth:doctor:"
	authCacheTTL    = 30 * time.Minute
)

// TokenCache remembers token hashes that already passed the database check.
type TokenCache interface {
	Seen(ctx context.Context, tokenHash string) (bool, error)
	Remember(ctx context.Context, tokenHash string) error
}

// RedisTokenCache keeps validated token hashes with a sliding TTL.
type RedisTokenCache struct {
	Client *redis.Client
}

func (c *RedisTokenCache) Seen(ctx context.Context, tokenHash string) (bool, error) {
	key := authCachePrefix + tokenHash
	cached, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if cached != "1" {
		return false, nil
	}
	if err := c.Client.Expire(ctx, key, authCacheTTL).Err(); err != nil {
		utils.GetLogger().Error("Failed to refresh auth cache TTL", zap.Error(err))
	}
	return true, nil
}

func (c *RedisTokenCache) Remember(ctx context.Context, tokenHash string) error {
	return c.Client.Set(ctx, authCachePrefix+tokenHash, "1", authCacheTTL).Err()
}

// JWTResolver validates tokens issued by this service. A token is only
// accepted while its hash matches the one stored on the doctor, so issuing a
// new token revokes the previous one.
type JWTResolver struct {
	Doctors DoctorLookup
	Cache   TokenCache
}

func (r *JWTResolver) Resolve(ctx context.Context, token string) (string, error) {
	doctorID, err := utils.ExtractIDFromToken(token)
	if err != nil || doctorID == "" {
		return "", ErrInvalidToken
	}

	hash := utils.HashToken(token)
	if r.Cache != nil {
		seen, err := r.Cache.Seen(ctx, hash)
		if err != nil {
			utils.GetLogger().Error("Error checking auth cache", zap.Error(err))
		} else if seen {
			return doctorID, nil
		}
	}

	doctor, err := r.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnknownDoctor, err)
	}
	if doctor.Security.TokenHash != hash {
		return "", ErrTokenRevoked
	}

	if r.Cache != nil {
		if err := r.Cache.Remember(ctx, hash); err != nil {
			utils.GetLogger().Error("Failed to set auth cache", zap.Error(err))
		}
	}
	return doctorID, nil
}

// Forget removes a superseded token hash.
func (c *RedisTokenCache) Forget(ctx context.Context, tokenHash string) error {
	return c.Client.Del(ctx, authCachePrefix+tokenHash).Err()
}
