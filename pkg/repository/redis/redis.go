// Package redis keeps profiles as string values and facts as lists, one list
// per user. RPUSH gives atomic appends that preserve insertion order.
package redis

import (
	"context"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"github.com/redis/go-redis/v9"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
)

// ErrNotFound is returned when the requested key does not exist
var ErrNotFound = interfaces.ErrNotFound

const defaultKeyPrefix = "wayfinder"

type Redis struct {
	client    *redis.Client
	keyPrefix string
	profile   *profileRepository
	fact      *factRepository
}

var _ interfaces.Repository = &Redis{}

type Option func(*Redis)

// WithKeyPrefix changes the namespace of every key, "wayfinder" by default
func WithKeyPrefix(prefix string) Option {
	return func(r *Redis) {
		r.keyPrefix = prefix
	}
}

// New connects to addr and verifies the connection with PING
func New(ctx context.Context, addr, password string, db int, opts ...Option) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, goerr.Wrap(err, "failed to connect to redis", goerr.V("addr", addr), goerr.V("db", db))
	}

	r := &Redis{
		client:    client,
		keyPrefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.profile = &profileRepository{redis: r}
	r.fact = &factRepository{redis: r}

	return r, nil
}

func (r *Redis) Profile() interfaces.ProfileRepository {
	return r.profile
}

func (r *Redis) Fact() interfaces.FactRepository {
	return r.fact
}

func (r *Redis) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func (r *Redis) profileKey(userID string) string {
	return r.keyPrefix + ":profile:" + url.PathEscape(userID)
}

func (r *Redis) usersKey() string {
	return r.keyPrefix + ":users"
}

func (r *Redis) factsKey(userID string) string {
	return r.keyPrefix + ":facts:" + url.PathEscape(userID)
}
