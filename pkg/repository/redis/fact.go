package redis

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/repository/record"
	"github.com/secmon-lab/wayfinder/pkg/utils/logging"
)

type factRepository struct {
	redis *Redis
}

func (r *factRepository) Append(ctx context.Context, userID string, entry *model.FactEntry) (*model.FactEntry, error) {
	created := record.PrepareFact(userID, entry, time.Now())
	data, err := record.MarshalFact(created)
	if err != nil {
		return nil, err
	}

	if err := r.redis.client.RPush(ctx, r.redis.factsKey(userID), data).Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to append fact",
			goerr.V("userID", userID),
			goerr.V("factID", created.ID),
		)
	}

	return created, nil
}

func (r *factRepository) List(ctx context.Context, userID string) ([]*model.FactEntry, error) {
	values, err := r.redis.client.LRange(ctx, r.redis.factsKey(userID), 0, -1).Result()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list facts", goerr.V("userID", userID))
	}

	entries := make([]*model.FactEntry, 0, len(values))
	for _, v := range values {
		entry, err := record.UnmarshalFact([]byte(v))
		if err != nil {
			logging.From(ctx).Warn("skip malformed fact", "user_id", userID, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
