package repository

import (
	"context"
	"fmt"

	"github.com/tallyboard/platform/internal/domain"
)

type scoreRepo struct{}

// NewScoreRepository returns a pgx-backed ScoreRepository.
func NewScoreRepository() ScoreRepository {
	return &scoreRepo{}
}

func (r *scoreRepo) Insert(ctx context.Context, db DBTX, boardID int64, record domain.ScoreRecord) error {
	_, err := db.Exec(ctx, `
		INSERT INTO scores (board_id, player_id, score, extra_info)
		VALUES ($1, $2, $3, $4)`,
		boardID, record.Player, record.Score, record.ExtraInfo)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (r *scoreRepo) ListByBoard(ctx context.Context, db DBTX, boardID int64) ([]domain.ScoreRecord, error) {
	rows, err := db.Query(ctx, `
		SELECT player_id, score, extra_info
		FROM scores WHERE board_id = $1
		ORDER BY score_id`, boardID)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	records := []domain.ScoreRecord{}
	for rows.Next() {
		var rec domain.ScoreRecord
		if err := rows.Scan(&rec.Player, &rec.Score, &rec.ExtraInfo); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return records, nil
}
