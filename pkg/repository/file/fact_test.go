package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/repository/file"
)

func TestAppendAfterTornWrite(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	repo, err := file.New(root)
	gt.NoError(t, err).Required()

	_, err = repo.Fact().Append(ctx, "u1", &model.FactEntry{Text: "у меня есть кот"})
	gt.NoError(t, err).Required()

	// interrupted write leaves a partial record without newline
	logPath := filepath.Join(root, "facts", "u1.jsonl")
	fd, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0o600)
	gt.NoError(t, err).Required()
	_, err = fd.WriteString(`{"id":"x","user_id":"u1","te`)
	gt.NoError(t, err).Required()
	gt.NoError(t, fd.Close()).Required()

	_, err = repo.Fact().Append(ctx, "u1", &model.FactEntry{Text: "я люблю чай"})
	gt.NoError(t, err).Required()

	entries, err := repo.Fact().List(ctx, "u1")
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(2).Required()
	gt.Value(t, entries[0].Text).Equal("у меня есть кот")
	gt.Value(t, entries[1].Text).Equal("я люблю чай")

	// reopening sees the same durable entries
	reopened, err := file.New(root)
	gt.NoError(t, err).Required()
	entries, err = reopened.Fact().List(ctx, "u1")
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(2)
}

func TestListIgnoresTornTail(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	repo, err := file.New(root)
	gt.NoError(t, err).Required()

	_, err = repo.Fact().Append(ctx, "u1", &model.FactEntry{Text: "мой адрес улица Ленина"})
	gt.NoError(t, err).Required()

	fd, err := os.OpenFile(filepath.Join(root, "facts", "u1.jsonl"), os.O_APPEND|os.O_WRONLY, 0o600)
	gt.NoError(t, err).Required()
	_, err = fd.WriteString(`{"id":"y"`)
	gt.NoError(t, err).Required()
	gt.NoError(t, fd.Close()).Required()

	entries, err := repo.Fact().List(ctx, "u1")
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(1).Required()
	gt.Value(t, entries[0].Text).Equal("мой адрес улица Ленина")
}
