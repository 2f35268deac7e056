package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tallyboard/platform/internal/auth"
	"github.com/tallyboard/platform/internal/domain"
	"github.com/tallyboard/platform/internal/repository"
)

// BoardService implements the board lifecycle and the score record protocol.
// Every board-scoped operation resolves the presented key into an authority
// level before touching the store.
type BoardService struct {
	db     repository.DBTX
	boards repository.BoardRepository
	scores repository.ScoreRepository
	logger *slog.Logger
}

// NewBoardService creates a new BoardService.
func NewBoardService(
	db repository.DBTX,
	boards repository.BoardRepository,
	scores repository.ScoreRepository,
	logger *slog.Logger,
) *BoardService {
	return &BoardService{
		db:     db,
		boards: boards,
		scores: scores,
		logger: logger,
	}
}

// Create makes a new board under the trimmed name and returns its freshly
// generated keys. This is the only time the keys are ever disclosed.
func (s *BoardService) Create(ctx context.Context, name string) (*domain.BoardKeys, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidBoardName(name)
	}

	existing, err := s.boards.FindByName(ctx, s.db, name)
	if err != nil {
		return nil, domain.ErrInternal("find board", err)
	}
	if existing != nil {
		return nil, domain.ErrBoardExists(name)
	}

	keys, err := auth.GenerateBoardKeys()
	if err != nil {
		return nil, domain.ErrInternal("generate board keys", err)
	}

	// The unique constraint on board_name settles the race between two
	// concurrent creations; the repository reports the loser as a conflict.
	board, err := s.boards.Create(ctx, s.db, name, keys)
	if err != nil {
		if appErr, ok := err.(*domain.AppError); ok {
			return nil, appErr
		}
		return nil, domain.ErrInternal("create board", err)
	}

	s.logger.Info("board created", "board", board.Name)
	return &board.Keys, nil
}

// Resolve looks up the board by name and computes the authority level of
// the presented key. It performs no mutations; the result is advisory input
// to the caller's own authorization decision.
func (s *BoardService) Resolve(ctx context.Context, name, presentedKey string) (int64, auth.AuthorityLevel, error) {
	board, err := s.boards.FindByName(ctx, s.db, name)
	if err != nil {
		return 0, auth.AuthorityUnauthorized, domain.ErrInternal("find board", err)
	}
	if board == nil {
		return 0, auth.AuthorityUnauthorized, domain.ErrNoSuchBoard(name)
	}
	return board.ID, auth.AuthorityFor(board.Keys, presentedKey), nil
}

// Scores returns all of the board's score records in submission order.
// Requires at least Read authority.
func (s *BoardService) Scores(ctx context.Context, name, presentedKey string) ([]domain.ScoreRecord, error) {
	boardID, authority, err := s.Resolve(ctx, name, presentedKey)
	if err != nil {
		return nil, err
	}
	if err := auth.Require(authority, auth.AuthorityRead); err != nil {
		return nil, err
	}

	records, err := s.scores.ListByBoard(ctx, s.db, boardID)
	if err != nil {
		return nil, domain.ErrInternal("list scores", err)
	}
	return records, nil
}

// Submit appends one score record to the board. Requires at least Submit
// authority.
func (s *BoardService) Submit(ctx context.Context, name, presentedKey string, record domain.ScoreRecord) error {
	boardID, authority, err := s.Resolve(ctx, name, presentedKey)
	if err != nil {
		return err
	}
	if err := auth.Require(authority, auth.AuthoritySubmit); err != nil {
		return err
	}

	if err := s.scores.Insert(ctx, s.db, boardID, record); err != nil {
		// The board can vanish between Resolve and Insert; the foreign key
		// makes that a clean not-found rather than an orphan row.
		if repository.IsForeignKeyViolation(err) {
			return domain.ErrNoSuchBoard(name)
		}
		return domain.ErrInternal("insert score", err)
	}

	s.logger.Info("score submitted", "board", name, "player", record.Player, "score", record.Score)
	return nil
}

// Delete removes the board and, through the cascading foreign key, every
// score record scoped to it. Requires Admin authority.
func (s *BoardService) Delete(ctx context.Context, name, presentedKey string) error {
	boardID, authority, err := s.Resolve(ctx, name, presentedKey)
	if err != nil {
		return err
	}
	if err := auth.Require(authority, auth.AuthorityAdmin); err != nil {
		return err
	}

	deleted, err := s.boards.Delete(ctx, s.db, boardID)
	if err != nil {
		return domain.ErrInternal("delete board", err)
	}
	if !deleted {
		return domain.ErrNoSuchBoard(name)
	}

	s.logger.Info("board deleted", "board", name)
	return nil
}
