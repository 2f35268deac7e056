package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tallyboard/platform/internal/domain"
)

type boardRepo struct{}

// NewBoardRepository returns a pgx-backed BoardRepository.
func NewBoardRepository() BoardRepository {
	return &boardRepo{}
}

func (r *boardRepo) FindByName(ctx context.Context, db DBTX, name string) (*domain.Board, error) {
	row := db.QueryRow(ctx, `
		SELECT board_id, board_name, read_key, submit_key, admin_key, created_at
		FROM boards WHERE board_name = $1`, name)
	return scanBoard(row)
}

func (r *boardRepo) Create(ctx context.Context, db DBTX, name string, keys domain.BoardKeys) (*domain.Board, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO boards (board_name, read_key, submit_key, admin_key)
		VALUES ($1, $2, $3, $4)
		RETURNING board_id, board_name, read_key, submit_key, admin_key, created_at`,
		name, keys.Read, keys.Submit, keys.Admin)

	board, err := scanBoard(row)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, domain.ErrBoardExists(name)
		}
		return nil, err
	}
	return board, nil
}

func (r *boardRepo) Delete(ctx context.Context, db DBTX, boardID int64) (bool, error) {
	result, err := db.Exec(ctx, `DELETE FROM boards WHERE board_id = $1`, boardID)
	if err != nil {
		return false, fmt.Errorf("delete board: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func scanBoard(row pgx.Row) (*domain.Board, error) {
	var b domain.Board
	err := row.Scan(&b.ID, &b.Name, &b.Keys.Read, &b.Keys.Submit, &b.Keys.Admin, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan board: %w", err)
	}
	return &b, nil
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation reports whether err is a Postgres foreign key
// violation (SQLSTATE 23503).
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
