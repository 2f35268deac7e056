package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tallyboard/platform/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// BoardRepository provides access to the boards table.
type BoardRepository interface {
	// FindByName returns a board by its exact (case-sensitive) name,
	// or nil if no such board exists.
	FindByName(ctx context.Context, db DBTX, name string) (*domain.Board, error)

	// Create inserts a new board together with its keys. The keys live in
	// the boards row, so the board and its credentials are created in one
	// atomic statement. A concurrent creation of the same name loses to
	// the unique constraint on board_name.
	Create(ctx context.Context, db DBTX, name string, keys domain.BoardKeys) (*domain.Board, error)

	// Delete removes the board row. The scores foreign key cascades, so
	// the board and all its score records disappear atomically. Returns
	// false if no row matched.
	Delete(ctx context.Context, db DBTX, boardID int64) (bool, error)
}

// ScoreRepository provides access to the scores table.
type ScoreRepository interface {
	// Insert appends a score record to the board. The non-nullable foreign
	// key rejects records for boards that do not exist.
	Insert(ctx context.Context, db DBTX, boardID int64, record domain.ScoreRecord) error

	// ListByBoard returns the board's score records in submission order.
	ListByBoard(ctx context.Context, db DBTX, boardID int64) ([]domain.ScoreRecord, error)
}
