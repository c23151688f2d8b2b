package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/repository/record"
	"github.com/secmon-lab/wayfinder/pkg/utils/safe"
)

const profileExt = ".json"

type profileRepository struct {
	file *File
}

func (r *profileRepository) path(userID string) string {
	return filepath.Join(profilesDir(r.file.root), fileName(userID, profileExt))
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*model.Profile, error) {
	r.file.mu.Lock()
	defer r.file.mu.Unlock()

	return r.read(userID)
}

func (r *profileRepository) read(userID string) (*model.Profile, error) {
	data, err := os.ReadFile(r.path(userID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrNotFound, "profile not found", goerr.V("userID", userID))
		}
		return nil, goerr.Wrap(err, "failed to read profile", goerr.V("userID", userID))
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

	r.file.mu.Lock()
	defer r.file.mu.Unlock()

	stored := profile.Copy()
	now := time.Now().UTC()
	if existing, err := r.read(profile.UserID); err == nil {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	data, err := record.MarshalProfile(stored)
	if err != nil {
		return err
	}

	dst := r.path(profile.UserID)
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".profile-*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp file", goerr.V("userID", profile.UserID))
	}
	tmpName := tmp.Name()
	defer safe.Remove(ctx, tmpName)

	if _, err := tmp.Write(data); err != nil {
		safe.Close(ctx, tmp)
		return goerr.Wrap(err, "failed to write profile", goerr.V("userID", profile.UserID))
	}
	if err := tmp.Sync(); err != nil {
		safe.Close(ctx, tmp)
		return goerr.Wrap(err, "failed to sync profile", goerr.V("userID", profile.UserID))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close profile", goerr.V("userID", profile.UserID))
	}

	if err := os.Rename(tmpName, dst); err != nil {
		return goerr.Wrap(err, "failed to replace profile", goerr.V("userID", profile.UserID))
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(profilesDir(r.file.root))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read profiles directory")
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if id, ok := userIDFromFileName(e.Name(), profileExt); ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
