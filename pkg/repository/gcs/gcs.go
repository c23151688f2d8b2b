// Package gcs stores profiles and facts as JSON objects in a Cloud Storage
// bucket. Object writes replace the whole object, which gives atomic profile
// updates; every fact is its own object so appends never conflict.
package gcs

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/wayfinder/pkg/utils/safe"
)

// ErrNotFound is returned when the requested object does not exist
var ErrNotFound = interfaces.ErrNotFound

type GCS struct {
	client  *storage.Client
	bucket  *storage.BucketHandle
	prefix  string
	profile *profileRepository
	fact    *factRepository
}

var _ interfaces.Repository = &GCS{}

type Option func(*GCS)

// WithPrefix places all objects below prefix, e.g. "wayfinder/"
func WithPrefix(prefix string) Option {
	return func(g *GCS) {
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		g.prefix = prefix
	}
}

func New(ctx context.Context, bucket string, opts ...Option) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is empty")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	g := &GCS{
		client: client,
		bucket: client.Bucket(bucket),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.profile = &profileRepository{gcs: g}
	g.fact = &factRepository{gcs: g}

	return g, nil
}

func (g *GCS) Profile() interfaces.ProfileRepository {
	return g.profile
}

func (g *GCS) Fact() interfaces.FactRepository {
	return g.fact
}

func (g *GCS) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func (g *GCS) profilesPrefix() string {
	return g.prefix + "profiles/"
}

func (g *GCS) profileObject(userID string) string {
	return g.profilesPrefix() + url.PathEscape(userID) + ".json"
}

func (g *GCS) factsPrefix(userID string) string {
	return g.prefix + "facts/" + url.PathEscape(userID) + "/"
}

func (g *GCS) read(ctx context.Context, name string) ([]byte, error) {
	r, err := g.bucket.Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, goerr.Wrap(ErrNotFound, "object not found", goerr.V("object", name))
		}
		return nil, goerr.Wrap(err, "failed to open object", goerr.V("object", name))
	}
	defer safe.Close(ctx, r)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read object", goerr.V("object", name))
	}
	return data, nil
}

func (g *GCS) write(ctx context.Context, obj *storage.ObjectHandle, data []byte) error {
	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		safe.Close(ctx, w)
		return goerr.Wrap(err, "failed to write object", goerr.V("object", obj.ObjectName()))
	}
	// The object becomes visible only when Close succeeds
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize object", goerr.V("object", obj.ObjectName()))
	}
	return nil
}
