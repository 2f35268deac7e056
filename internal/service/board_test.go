package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyboard/platform/internal/auth"
	"github.com/tallyboard/platform/internal/domain"
	"github.com/tallyboard/platform/internal/repository"
)

// fakeStore is an in-memory stand-in for the board and score repositories.
type fakeStore struct {
	boards map[string]*domain.Board
	scores map[int64][]domain.ScoreRecord
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		boards: make(map[string]*domain.Board),
		scores: make(map[int64][]domain.ScoreRecord),
		nextID: 1,
	}
}

func (f *fakeStore) FindByName(_ context.Context, _ repository.DBTX, name string) (*domain.Board, error) {
	if b, ok := f.boards[name]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeStore) Create(_ context.Context, _ repository.DBTX, name string, keys domain.BoardKeys) (*domain.Board, error) {
	if _, ok := f.boards[name]; ok {
		return nil, domain.ErrBoardExists(name)
	}
	b := &domain.Board{ID: f.nextID, Name: name, Keys: keys}
	f.nextID++
	f.boards[name] = b
	copied := *b
	return &copied, nil
}

func (f *fakeStore) Delete(_ context.Context, _ repository.DBTX, boardID int64) (bool, error) {
	for name, b := range f.boards {
		if b.ID == boardID {
			delete(f.boards, name)
			delete(f.scores, boardID)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Insert(_ context.Context, _ repository.DBTX, boardID int64, record domain.ScoreRecord) error {
	f.scores[boardID] = append(f.scores[boardID], record)
	return nil
}

func (f *fakeStore) ListByBoard(_ context.Context, _ repository.DBTX, boardID int64) ([]domain.ScoreRecord, error) {
	return append([]domain.ScoreRecord{}, f.scores[boardID]...), nil
}

func newTestService() (*BoardService, *fakeStore) {
	store := newFakeStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewBoardService(nil, store, store, logger), store
}

func appStatus(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*domain.AppError)
	require.True(t, ok, "expected *domain.AppError, got %T: %v", err, err)
	return appErr.Status
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns three distinct non-empty keys", func(t *testing.T) {
		svc, _ := newTestService()
		keys, err := svc.Create(ctx, "arcade")
		require.NoError(t, err)

		assert.NotEmpty(t, keys.Read)
		assert.NotEmpty(t, keys.Submit)
		assert.NotEmpty(t, keys.Admin)
		assert.NotEqual(t, keys.Read, keys.Submit)
		assert.NotEqual(t, keys.Submit, keys.Admin)

		// Lookup by name succeeds afterwards.
		id, authority, err := svc.Resolve(ctx, "arcade", keys.Admin)
		require.NoError(t, err)
		assert.NotZero(t, id)
		assert.Equal(t, auth.AuthorityAdmin, authority)
	})

	t.Run("trims the name", func(t *testing.T) {
		svc, store := newTestService()
		_, err := svc.Create(ctx, "  spaced  ")
		require.NoError(t, err)
		assert.Contains(t, store.boards, "spaced")
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Create(ctx, "   ")
		assert.Equal(t, 400, appStatus(t, err))
	})

	t.Run("duplicate name conflicts without mutating state", func(t *testing.T) {
		svc, store := newTestService()
		keys, err := svc.Create(ctx, "arcade")
		require.NoError(t, err)

		_, err = svc.Create(ctx, "arcade")
		assert.Equal(t, 409, appStatus(t, err))

		// Original keys unchanged.
		assert.Equal(t, *keys, store.boards["arcade"].Keys)
	})

	t.Run("name matching is case-sensitive", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Create(ctx, "arcade")
		require.NoError(t, err)
		_, err = svc.Create(ctx, "Arcade")
		assert.NoError(t, err)
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	keys, err := svc.Create(ctx, "arcade")
	require.NoError(t, err)

	t.Run("maps each key to its tier", func(t *testing.T) {
		_, authority, err := svc.Resolve(ctx, "arcade", keys.Read)
		require.NoError(t, err)
		assert.Equal(t, auth.AuthorityRead, authority)

		_, authority, err = svc.Resolve(ctx, "arcade", keys.Submit)
		require.NoError(t, err)
		assert.Equal(t, auth.AuthoritySubmit, authority)

		_, authority, err = svc.Resolve(ctx, "arcade", keys.Admin)
		require.NoError(t, err)
		assert.Equal(t, auth.AuthorityAdmin, authority)
	})

	t.Run("unknown or absent key is unauthorized", func(t *testing.T) {
		_, authority, err := svc.Resolve(ctx, "arcade", "wrong")
		require.NoError(t, err)
		assert.Equal(t, auth.AuthorityUnauthorized, authority)

		_, authority, err = svc.Resolve(ctx, "arcade", "")
		require.NoError(t, err)
		assert.Equal(t, auth.AuthorityUnauthorized, authority)
	})

	t.Run("missing board is not found", func(t *testing.T) {
		_, _, err := svc.Resolve(ctx, "ghost", keys.Admin)
		assert.Equal(t, 404, appStatus(t, err))
	})
}

func TestSubmitAndScores(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	keys, err := svc.Create(ctx, "arcade")
	require.NoError(t, err)

	info := "very cool"
	records := []domain.ScoreRecord{
		{Player: "nertsal", Score: 10, ExtraInfo: nil},
		{Player: "nert", Score: 5, ExtraInfo: &info},
	}

	t.Run("submission order is preserved", func(t *testing.T) {
		for _, rec := range records {
			require.NoError(t, svc.Submit(ctx, "arcade", keys.Submit, rec))
		}

		got, err := svc.Scores(ctx, "arcade", keys.Read)
		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("admin key may also submit and read", func(t *testing.T) {
		require.NoError(t, svc.Submit(ctx, "arcade", keys.Admin, domain.ScoreRecord{Player: "third", Score: 1}))
		got, err := svc.Scores(ctx, "arcade", keys.Admin)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("read key cannot submit", func(t *testing.T) {
		before, err := svc.Scores(ctx, "arcade", keys.Read)
		require.NoError(t, err)

		err = svc.Submit(ctx, "arcade", keys.Read, domain.ScoreRecord{Player: "x", Score: 0})
		assert.Equal(t, 403, appStatus(t, err))

		after, err := svc.Scores(ctx, "arcade", keys.Read)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})

	t.Run("no key cannot submit or read", func(t *testing.T) {
		err := svc.Submit(ctx, "arcade", "", domain.ScoreRecord{Player: "x", Score: 0})
		assert.Equal(t, 401, appStatus(t, err))

		_, err = svc.Scores(ctx, "arcade", "")
		assert.Equal(t, 401, appStatus(t, err))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("admin key removes board and scores", func(t *testing.T) {
		svc, store := newTestService()
		keys, err := svc.Create(ctx, "arcade")
		require.NoError(t, err)
		require.NoError(t, svc.Submit(ctx, "arcade", keys.Submit, domain.ScoreRecord{Player: "p", Score: 1}))

		require.NoError(t, svc.Delete(ctx, "arcade", keys.Admin))

		_, _, err = svc.Resolve(ctx, "arcade", keys.Admin)
		assert.Equal(t, 404, appStatus(t, err))
		assert.Empty(t, store.scores)
	})

	t.Run("submit key cannot delete", func(t *testing.T) {
		svc, _ := newTestService()
		keys, err := svc.Create(ctx, "arcade")
		require.NoError(t, err)

		err = svc.Delete(ctx, "arcade", keys.Submit)
		assert.Equal(t, 403, appStatus(t, err))
	})

	t.Run("no key cannot delete", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Create(ctx, "arcade")
		require.NoError(t, err)

		err = svc.Delete(ctx, "arcade", "")
		assert.Equal(t, 401, appStatus(t, err))
	})
}
