package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dota-tracker/internal/constants"
	"dota-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type ParticipationRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewParticipationRepository(db *sql.DB, logger zerolog.Logger) *ParticipationRepository {
	return &ParticipationRepository{db: db, logger: logger}
}

const upsertParticipationSQL = `
INSERT INTO participations (id, team_id, match_id, side, result, opponent_name, pick_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(team_id, match_id) DO UPDATE SET
    side = excluded.side,
    result = excluded.result,
    opponent_name = excluded.opponent_name,
    pick_order = excluded.pick_order,
    updated_at = excluded.updated_at`

func (r *ParticipationRepository) UpsertBatch(ctx context.Context, parts []*domain.TeamMatchParticipation) error {
	if len(parts) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for i := 0; i < len(parts); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(parts) {
			end = len(parts)
		}

		for _, p := range parts[i:end] {
			id, err := gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate participation id: %w", err)
			}
			if _, err := tx.ExecContext(ctx, upsertParticipationSQL,
				id, p.TeamID, p.MatchID,
				string(p.Side), string(p.Result), p.OpponentName, string(p.PickOrder),
				now, now,
			); err != nil {
				return fmt.Errorf("failed to upsert participation %d/%d: %w", p.TeamID, p.MatchID, err)
			}
		}
	}

	return tx.Commit()
}

// GetByTeam returns the team's participations keyed by match ID, the shape
// the filter engine consumes.
func (r *ParticipationRepository) GetByTeam(ctx context.Context, teamID int64) (map[int64]domain.TeamMatchParticipation, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT team_id, match_id, side, result, opponent_name, pick_order
FROM participations
WHERE team_id = ?`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]domain.TeamMatchParticipation)
	for rows.Next() {
		var p domain.TeamMatchParticipation
		var side, result, pickOrder string
		if err := rows.Scan(&p.TeamID, &p.MatchID, &side, &result, &p.OpponentName, &pickOrder); err != nil {
			return nil, err
		}
		p.Side = domain.Side(side)
		p.Result = domain.Result(result)
		p.PickOrder = domain.PickOrder(pickOrder)
		out[p.MatchID] = p
	}
	return out, rows.Err()
}
