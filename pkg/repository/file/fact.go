package file

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/repository/record"
	"github.com/secmon-lab/wayfinder/pkg/utils/logging"
	"github.com/secmon-lab/wayfinder/pkg/utils/safe"
)

const factExt = ".jsonl"

type factRepository struct {
	file *File
}

func (r *factRepository) path(userID string) string {
	return filepath.Join(factsDir(r.file.root), fileName(userID, factExt))
}

func (r *factRepository) Append(ctx context.Context, userID string, entry *model.FactEntry) (*model.FactEntry, error) {
	created := record.PrepareFact(userID, entry, time.Now())
	data, err := record.MarshalFact(created)
	if err != nil {
		return nil, err
	}
	data = append(data, '\n')

	r.file.mu.Lock()
	defer r.file.mu.Unlock()

	fd, err := os.OpenFile(r.path(userID), os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open fact log", goerr.V("userID", userID))
	}
	defer safe.Close(ctx, fd)

	if err := dropTornTail(ctx, fd); err != nil {
		return nil, goerr.Wrap(err, "failed to repair fact log", goerr.V("userID", userID))
	}

	// A single write call keeps the line intact
	if _, err := fd.Write(data); err != nil {
		return nil, goerr.Wrap(err, "failed to append fact", goerr.V("userID", userID))
	}
	if err := fd.Sync(); err != nil {
		return nil, goerr.Wrap(err, "failed to sync fact log", goerr.V("userID", userID))
	}

	return created, nil
}

// dropTornTail truncates an unterminated last line left by an interrupted
// write. Such a line was never acknowledged, and appending after it would
// merge it with the next entry.
func dropTornTail(ctx context.Context, fd *os.File) error {
	info, err := fd.Stat()
	if err != nil {
		return goerr.Wrap(err, "failed to stat fact log")
	}
	size := info.Size()
	if size == 0 {
		return nil
	}

	last := make([]byte, 1)
	if _, err := fd.ReadAt(last, size-1); err != nil {
		return goerr.Wrap(err, "failed to read fact log tail")
	}
	if last[0] == '\n' {
		return nil
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(io.NewSectionReader(fd, 0, size), data); err != nil {
		return goerr.Wrap(err, "failed to read fact log")
	}
	keep := int64(bytes.LastIndexByte(data, '\n') + 1)

	logging.From(ctx).Warn("dropping torn fact log tail", "bytes", size-keep)
	if err := fd.Truncate(keep); err != nil {
		return goerr.Wrap(err, "failed to truncate fact log", goerr.V("size", keep))
	}
	return nil
}

// List skips lines that can't be decoded, e.g. a torn write after a crash
func (r *factRepository) List(ctx context.Context, userID string) ([]*model.FactEntry, error) {
	r.file.mu.Lock()
	defer r.file.mu.Unlock()

	data, err := os.ReadFile(r.path(userID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*model.FactEntry{}, nil
		}
		return nil, goerr.Wrap(err, "failed to read fact log", goerr.V("userID", userID))
	}

	entries := make([]*model.FactEntry, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		entry, err := record.UnmarshalFact(line)
		if err != nil {
			logging.From(ctx).Warn("skip malformed fact line", "user_id", userID, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to scan fact log", goerr.V("userID", userID))
	}

	return entries, nil
}
