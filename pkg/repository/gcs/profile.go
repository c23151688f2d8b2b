package gcs

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/repository/record"
	"google.golang.org/api/iterator"
)

type profileRepository struct {
	gcs *GCS
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*model.Profile, error) {
	data, err := r.gcs.read(ctx, r.gcs.profileObject(userID))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("userID", userID))
	}

	p, err := record.UnmarshalProfile(data)
	if err != nil {
		return nil, goerr.Wrap(err, "malformed profile", goerr.V("userID", userID))
	}
	return p, nil
}

func (r *profileRepository) Put(ctx context.Context, profile *model.Profile) error {
	if profile.UserID == "" {
		return goerr.New("profile has no user ID")
	}

	stored := profile.Copy()
	now := time.Now().UTC()
	if existing, err := r.Get(ctx, profile.UserID); err == nil {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	data, err := record.MarshalProfile(stored)
	if err != nil {
		return err
	}

	obj := r.gcs.bucket.Object(r.gcs.profileObject(profile.UserID))
	if err := r.gcs.write(ctx, obj, data); err != nil {
		return goerr.Wrap(err, "failed to put profile", goerr.V("userID", profile.UserID))
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context) ([]string, error) {
	prefix := r.gcs.profilesPrefix()
	it := r.gcs.bucket.Objects(ctx, &storage.Query{Prefix: prefix})

	ids := make([]string, 0)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list profiles")
		}

		name := strings.TrimSuffix(strings.TrimPrefix(attrs.Name, prefix), ".json")
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		id, err := url.PathUnescape(name)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids, nil
}
