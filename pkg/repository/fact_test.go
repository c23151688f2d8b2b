package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
	"github.com/secmon-lab/wayfinder/pkg/domain/model"
)

func runFactRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Append assigns ID, owner and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := fmt.Sprintf("user-%d", time.Now().UnixNano())
		created, err := repo.Fact().Append(ctx, userID, &model.FactEntry{
			Text:     "у меня есть собака",
			Metadata: map[string]string{"source": "dialog"},
		})
		gt.NoError(t, err).Required()

		gt.String(t, string(created.ID)).NotEqual("")
		gt.Value(t, created.UserID).Equal(userID)
		gt.Value(t, created.Text).Equal("у меня есть собака")
		gt.Value(t, created.Metadata["source"]).Equal("dialog")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("List returns entries in insertion order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := fmt.Sprintf("user-%d", time.Now().UnixNano())
		texts := []string{"я люблю джаз", "мой адрес улица Ленина", "у меня есть кошка"}
		for _, text := range texts {
			_, err := repo.Fact().Append(ctx, userID, &model.FactEntry{Text: text})
			gt.NoError(t, err).Required()
		}

		entries, err := repo.Fact().List(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(3).Required()
		for i, text := range texts {
			gt.Value(t, entries[i].Text).Equal(text)
		}
	})

	t.Run("identical texts are kept as separate entries", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		userID := fmt.Sprintf("user-%d", time.Now().UnixNano())
		first, err := repo.Fact().Append(ctx, userID, &model.FactEntry{Text: "я люблю чай"})
		gt.NoError(t, err).Required()
		second, err := repo.Fact().Append(ctx, userID, &model.FactEntry{Text: "я люблю чай"})
		gt.NoError(t, err).Required()
		gt.Value(t, first.ID).NotEqual(second.ID)

		entries, err := repo.Fact().List(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(2)
	})

	t.Run("List of unknown user is empty", func(t *testing.T) {
		repo := newRepo(t)

		entries, err := repo.Fact().List(context.Background(), fmt.Sprintf("nobody-%d", time.Now().UnixNano()))
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(0)
	})

	t.Run("users are isolated", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UnixNano()
		u1 := fmt.Sprintf("user-%d-1", base)
		u2 := fmt.Sprintf("user-%d-2", base)
		_, err := repo.Fact().Append(ctx, u1, &model.FactEntry{Text: "у меня есть собака"})
		gt.NoError(t, err).Required()

		entries, err := repo.Fact().List(ctx, u2)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(0)
	})
}

func TestFactRepository(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			runFactRepositoryTest(t, b.newRepo)
		})
	}
}
