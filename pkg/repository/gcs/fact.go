package gcs

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/repository/record"
	"github.com/secmon-lab/wayfinder/pkg/utils/logging"
	"google.golang.org/api/iterator"
)

type factRepository struct {
	gcs *GCS
}

func (r *factRepository) Append(ctx context.Context, userID string, entry *model.FactEntry) (*model.FactEntry, error) {
	created := record.PrepareFact(userID, entry, time.Now())
	data, err := record.MarshalFact(created)
	if err != nil {
		return nil, err
	}

	name := r.gcs.factsPrefix(userID) + string(created.ID) + ".json"
	obj := r.gcs.bucket.Object(name).If(storage.Conditions{DoesNotExist: true})
	if err := r.gcs.write(ctx, obj, data); err != nil {
		return nil, goerr.Wrap(err, "failed to append fact",
			goerr.V("userID", userID),
			goerr.V("factID", created.ID),
		)
	}

	return created, nil
}

func (r *factRepository) List(ctx context.Context, userID string) ([]*model.FactEntry, error) {
	it := r.gcs.bucket.Objects(ctx, &storage.Query{Prefix: r.gcs.factsPrefix(userID)})

	entries := make([]*model.FactEntry, 0)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list facts", goerr.V("userID", userID))
		}

		data, err := r.gcs.read(ctx, attrs.Name)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read fact", goerr.V("userID", userID))
		}
		entry, err := record.UnmarshalFact(data)
		if err != nil {
			logging.From(ctx).Warn("skip malformed fact object", "object", attrs.Name, "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	// Fact IDs are time ordered; CreatedAt settles entries from different writers
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	return entries, nil
}
