package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/wayfinder/pkg/repository/file"
	"github.com/secmon-lab/wayfinder/pkg/repository/firestore"
	"github.com/secmon-lab/wayfinder/pkg/repository/gcs"
	"github.com/secmon-lab/wayfinder/pkg/repository/memory"
	"github.com/secmon-lab/wayfinder/pkg/repository/redis"
	"github.com/secmon-lab/wayfinder/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const (
	BackendMemory    = "memory"
	BackendFile      = "file"
	BackendFirestore = "firestore"
	BackendGCS       = "gcs"
	BackendRedis     = "redis"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend string

	fileDir string

	projectID  string
	databaseID string
	prefix     string

	bucket string

	redisAddr     string
	redisPassword string
	redisDB       int
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Category:    "Repository",
			Usage:       "Repository backend type (memory, file, firestore, gcs, redis)",
			Value:       BackendFile,
			Sources:     cli.EnvVars("WAYFINDER_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "file-dir",
			Category:    "Repository",
			Usage:       "Data directory for the file backend",
			Value:       "./data",
			Sources:     cli.EnvVars("WAYFINDER_FILE_DIR"),
			Destination: &r.fileDir,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Category:    "Repository",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Sources:     cli.EnvVars("WAYFINDER_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Category:    "Repository",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("WAYFINDER_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "repository-prefix",
			Category:    "Repository",
			Usage:       "Collection, object or key prefix for firestore, gcs and redis backends",
			Sources:     cli.EnvVars("WAYFINDER_REPOSITORY_PREFIX"),
			Destination: &r.prefix,
		},
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Category:    "Repository",
			Usage:       "Cloud Storage bucket (required when using gcs backend)",
			Sources:     cli.EnvVars("WAYFINDER_GCS_BUCKET"),
			Destination: &r.bucket,
		},
		&cli.StringFlag{
			Name:        "redis-addr",
			Category:    "Repository",
			Usage:       "Redis address host:port (required when using redis backend)",
			Sources:     cli.EnvVars("WAYFINDER_REDIS_ADDR"),
			Destination: &r.redisAddr,
		},
		&cli.StringFlag{
			Name:        "redis-password",
			Category:    "Repository",
			Usage:       "Redis password",
			Sources:     cli.EnvVars("WAYFINDER_REDIS_PASSWORD"),
			Destination: &r.redisPassword,
		},
		&cli.IntFlag{
			Name:        "redis-db",
			Category:    "Repository",
			Usage:       "Redis database number",
			Sources:     cli.EnvVars("WAYFINDER_REDIS_DB"),
			Destination: &r.redisDB,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

func (r *Repository) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{slog.String("backend", r.backend)}
	switch r.backend {
	case BackendFile:
		attrs = append(attrs, slog.String("dir", r.fileDir))
	case BackendFirestore:
		attrs = append(attrs,
			slog.String("project_id", r.projectID),
			slog.String("database_id", r.databaseID),
			slog.String("prefix", r.prefix),
		)
	case BackendGCS:
		attrs = append(attrs, slog.String("bucket", r.bucket), slog.String("prefix", r.prefix))
	case BackendRedis:
		attrs = append(attrs, slog.String("addr", r.redisAddr), slog.Int("db", r.redisDB))
	}
	return attrs
}

func missing(option string) error {
	return goerr.Wrap(ErrMissingOption, option+" is required", goerr.V(OptionKey, option))
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	logger := logging.Default()

	switch r.backend {
	case BackendMemory:
		logger.Warn("Using in-memory repository, state is lost on exit")
		return memory.New(), nil

	case BackendFile:
		if r.fileDir == "" {
			return nil, missing("file-dir")
		}
		repo, err := file.New(r.fileDir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize file repository")
		}
		logger.Info("Using file repository", "dir", r.fileDir)
		return repo, nil

	case BackendFirestore:
		if r.projectID == "" {
			return nil, missing("firestore-project-id")
		}
		var opts []firestore.Option
		if r.prefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(r.prefix))
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logger.Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	case BackendGCS:
		if r.bucket == "" {
			return nil, missing("gcs-bucket")
		}
		var opts []gcs.Option
		if r.prefix != "" {
			opts = append(opts, gcs.WithPrefix(r.prefix))
		}
		repo, err := gcs.New(ctx, r.bucket, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize gcs repository")
		}
		logger.Info("Using Cloud Storage repository", "bucket", r.bucket)
		return repo, nil

	case BackendRedis:
		if r.redisAddr == "" {
			return nil, missing("redis-addr")
		}
		var opts []redis.Option
		if r.prefix != "" {
			opts = append(opts, redis.WithKeyPrefix(r.prefix))
		}
		repo, err := redis.New(ctx, r.redisAddr, r.redisPassword, r.redisDB, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize redis repository")
		}
		logger.Info("Using Redis repository", "addr", r.redisAddr, "db", r.redisDB)
		return repo, nil

	default:
		return nil, goerr.Wrap(ErrInvalidBackend, "unknown repository backend", goerr.V(BackendKey, r.backend))
	}
}
