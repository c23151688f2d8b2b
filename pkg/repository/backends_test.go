package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/wayfinder/pkg/repository/file"
	"github.com/secmon-lab/wayfinder/pkg/repository/firestore"
	"github.com/secmon-lab/wayfinder/pkg/repository/gcs"
	"github.com/secmon-lab/wayfinder/pkg/repository/memory"
	"github.com/secmon-lab/wayfinder/pkg/repository/redis"
)

type backend struct {
	name    string
	newRepo func(t *testing.T) interfaces.Repository
}

func backends() []backend {
	return []backend{
		{name: "memory", newRepo: newMemoryRepository},
		{name: "file", newRepo: newFileRepository},
		{name: "firestore", newRepo: newFirestoreRepository},
		{name: "gcs", newRepo: newGCSRepository},
		{name: "redis", newRepo: newRedisRepository},
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) ||
		errors.Is(err, file.ErrNotFound) ||
		errors.Is(err, firestore.ErrNotFound) ||
		errors.Is(err, gcs.ErrNotFound) ||
		errors.Is(err, redis.ErrNotFound)
}

// testPrefix isolates data of one test run on shared cloud backends
func testPrefix() string {
	return fmt.Sprintf("test_%d", time.Now().UnixNano())
}

func newMemoryRepository(t *testing.T) interfaces.Repository {
	return memory.New()
}

func newFileRepository(t *testing.T) interfaces.Repository {
	t.Helper()
	repo, err := file.New(t.TempDir())
	gt.NoError(t, err).Required()
	return repo
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(testPrefix()))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func newGCSRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	bucket := os.Getenv("TEST_GCS_BUCKET")
	if bucket == "" {
		t.Skip("TEST_GCS_BUCKET not set")
	}

	ctx := context.Background()
	repo, err := gcs.New(ctx, bucket, gcs.WithPrefix(testPrefix()))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func newRedisRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	repo, err := redis.New(ctx, addr, os.Getenv("TEST_REDIS_PASSWORD"), 0, redis.WithKeyPrefix(testPrefix()))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}
