// Package file stores profiles and facts as JSON documents under a local
// directory. Profiles are replaced via temp file and rename; facts are kept
// as one JSON line per entry.
package file

import (
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
)

// ErrNotFound is returned when the requested record does not exist
var ErrNotFound = interfaces.ErrNotFound

type File struct {
	root    string
	mu      sync.Mutex
	profile *profileRepository
	fact    *factRepository
}

var _ interfaces.Repository = &File{}

func New(root string) (*File, error) {
	if root == "" {
		return nil, goerr.New("storage directory is empty")
	}

	for _, dir := range []string{profilesDir(root), factsDir(root)} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, goerr.Wrap(err, "failed to create storage directory", goerr.V("dir", dir))
		}
	}

	f := &File{root: root}
	f.profile = &profileRepository{file: f}
	f.fact = &factRepository{file: f}
	return f, nil
}

func (f *File) Profile() interfaces.ProfileRepository {
	return f.profile
}

func (f *File) Fact() interfaces.FactRepository {
	return f.fact
}

func (f *File) Close() error {
	return nil
}

func profilesDir(root string) string {
	return filepath.Join(root, "profiles")
}

func factsDir(root string) string {
	return filepath.Join(root, "facts")
}

// fileName escapes a user ID so it can't leave the storage directory
func fileName(userID, ext string) string {
	return url.PathEscape(userID) + ext
}

func userIDFromFileName(name, ext string) (string, bool) {
	if filepath.Ext(name) != ext {
		return "", false
	}
	id, err := url.PathUnescape(name[:len(name)-len(ext)])
	if err != nil {
		return "", false
	}
	return id, true
}
