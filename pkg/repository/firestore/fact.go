package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/repository/record"
	"google.golang.org/api/iterator"
)

// factDocument is stored at users/{userID}/facts/{factID}
type factDocument struct {
	ID        string            `firestore:"ID"`
	UserID    string            `firestore:"UserID"`
	Text      string            `firestore:"Text"`
	Metadata  map[string]string `firestore:"Metadata,omitempty"`
	CreatedAt time.Time         `firestore:"CreatedAt"`
}

func toFactDocument(f *model.FactEntry) *factDocument {
	return &factDocument{
		ID:        string(f.ID),
		UserID:    f.UserID,
		Text:      f.Text,
		Metadata:  f.Metadata,
		CreatedAt: f.CreatedAt,
	}
}

func toFactModel(doc *factDocument) *model.FactEntry {
	metadata := doc.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &model.FactEntry{
		ID:        model.FactID(doc.ID),
		UserID:    doc.UserID,
		Text:      doc.Text,
		Metadata:  metadata,
		CreatedAt: doc.CreatedAt,
	}
}

type factRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newFactRepository(client *firestore.Client) *factRepository {
	return &factRepository{client: client}
}

func (r *factRepository) factsCollection(userID string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection(r.collectionPrefix)).Doc(userID).Collection("facts")
}

func (r *factRepository) Append(ctx context.Context, userID string, entry *model.FactEntry) (*model.FactEntry, error) {
	created := record.PrepareFact(userID, entry, time.Now())

	// Create fails if the ID already exists, keeping the log append-only
	if _, err := r.factsCollection(userID).Doc(string(created.ID)).Create(ctx, toFactDocument(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to append fact",
			goerr.V("userID", userID),
			goerr.V("factID", created.ID),
		)
	}

	return created, nil
}

func (r *factRepository) List(ctx context.Context, userID string) ([]*model.FactEntry, error) {
	iter := r.factsCollection(userID).
		OrderBy("CreatedAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	entries := make([]*model.FactEntry, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate facts", goerr.V("userID", userID))
		}

		var doc factDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal fact", goerr.V("userID", userID))
		}
		entries = append(entries, toFactModel(&doc))
	}

	return entries, nil
}
