package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// profileDocument is stored at users/{userID}
type profileDocument struct {
	UserID    string    `firestore:"UserID"`
	Name      string    `firestore:"Name"`
	Interests []string  `firestore:"Interests"`
	Mood      string    `firestore:"Mood"`
	Energy    string    `firestore:"Energy"`
	CreatedAt time.Time `firestore:"CreatedAt"`
	UpdatedAt time.Time `firestore:"UpdatedAt"`
}

func toProfileDocument(p *model.Profile) *profileDocument {
	return &profileDocument{
		UserID:    p.UserID,
		Name:      p.Name,
		Interests: p.Interests,
		Mood:      string(p.Affect.Mood),
		Energy:    string(p.Affect.Energy),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProfileModel(doc *profileDocument) *model.Profile {
	p := &model.Profile{
		UserID:    doc.UserID,
		Name:      doc.Name,
		Interests: doc.Interests,
		Affect: model.AffectState{
			Mood:   types.Mood(doc.Mood),
			Energy: types.Energy(doc.Energy),
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	p.Normalize()
	return p
}

type profileRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProfileRepository(client *firestore.Client) *profileRepository {
	return &profileRepository{client: client}
}

func (r *profileRepository) doc(userID string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection(r.collectionPrefix)).Doc(userID)
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*model.Profile, error) {
	snap, err := r.doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("userID", userID))
		}
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("userID", userID))
	}

	var doc profileDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal profile", goerr.V("userID", userID))
	}

	return toProfileModel(&doc), nil
}

// Put replaces the document in a transaction so that CreatedAt survives
// concurrent writers.
func (r *profileRepository) Put(ctx context.Context, profile *model.Profile) error {
	if profile.UserID == "" {
		return goerr.New("profile has no user ID")
	}

	ref := r.doc(profile.UserID)
	doc := toProfileDocument(profile)
	now := time.Now().UTC()
	doc.UpdatedAt = now

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			var existing profileDocument
			if err := snap.DataTo(&existing); err != nil {
				return goerr.Wrap(err, "failed to unmarshal existing profile")
			}
			doc.CreatedAt = existing.CreatedAt
		case status.Code(err) == codes.NotFound:
			if doc.CreatedAt.IsZero() {
				doc.CreatedAt = now
			}
		default:
			return goerr.Wrap(err, "failed to get existing profile")
		}
		return tx.Set(ref, doc)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to put profile", goerr.V("userID", profile.UserID))
	}

	return nil
}

func (r *profileRepository) List(ctx context.Context) ([]string, error) {
	iter := r.client.Collection(usersCollection(r.collectionPrefix)).Documents(ctx)
	defer iter.Stop()

	ids := make([]string, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate profiles")
		}
		ids = append(ids, snap.Ref.ID)
	}

	return ids, nil
}
