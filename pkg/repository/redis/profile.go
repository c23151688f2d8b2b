package redis

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/redis/go-redis/v9"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/repository/record"
)

type profileRepository struct {
	redis *Redis
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*model.Profile, error) {
	data, err := r.redis.client.Get(ctx, r.redis.profileKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("userID", userID))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("userID", userID))
	}

	p, err := record.UnmarshalProfile(data)
	if err != nil {
		return nil, goerr.Wrap(err, "malformed profile", goerr.V("userID", userID))
	}
	return p, nil
}

// Put writes the profile inside WATCH/MULTI so CreatedAt is taken from the
// value that is actually replaced.
func (r *profileRepository) Put(ctx context.Context, profile *model.Profile) error {
	if profile.UserID == "" {
		return goerr.New("profile has no user ID")
	}

	key := r.redis.profileKey(profile.UserID)
	stored := profile.Copy()
	now := time.Now().UTC()
	stored.UpdatedAt = now

	txf := func(tx *redis.Tx) error {
		existing, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			if prev, err := record.UnmarshalProfile(existing); err == nil {
				stored.CreatedAt = prev.CreatedAt
			}
		case errors.Is(err, redis.Nil):
			if stored.CreatedAt.IsZero() {
				stored.CreatedAt = now
			}
		default:
			return goerr.Wrap(err, "failed to get existing profile")
		}

		data, err := record.MarshalProfile(stored)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.SAdd(ctx, r.redis.usersKey(), profile.UserID)
			return nil
		})
		return err
	}

	if err := r.redis.client.Watch(ctx, txf, key); err != nil {
		return goerr.Wrap(err, "failed to put profile", goerr.V("userID", profile.UserID))
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context) ([]string, error) {
	ids, err := r.redis.client.SMembers(ctx, r.redis.usersKey()).Result()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list profiles")
	}
	sort.Strings(ids)
	return ids, nil
}
