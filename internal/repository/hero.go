package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"dota-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type HeroRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewHeroRepository(db *sql.DB, logger zerolog.Logger) *HeroRepository {
	return &HeroRepository{db: db, logger: logger}
}

const upsertHeroSQL = `
INSERT INTO heroes (hero_id, name, primary_attr, attack_type, roles, complexity, image, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(hero_id) DO UPDATE SET
    name = excluded.name,
    primary_attr = excluded.primary_attr,
    attack_type = excluded.attack_type,
    roles = excluded.roles,
    complexity = excluded.complexity,
    image = excluded.image,
    updated_at = excluded.updated_at`

func (r *HeroRepository) UpsertBatch(ctx context.Context, heroes []*domain.Hero) error {
	if len(heroes) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, h := range heroes {
		if _, err := tx.ExecContext(ctx, upsertHeroSQL,
			h.ID, h.Name, h.PrimaryAttr, h.AttackType,
			strings.Join(h.Roles, ","), h.Complexity, h.Image, now,
		); err != nil {
			return fmt.Errorf("failed to upsert hero %d: %w", h.ID, err)
		}
	}

	return tx.Commit()
}

func (r *HeroRepository) GetAll(ctx context.Context) ([]*domain.Hero, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT hero_id, name, primary_attr, attack_type, roles, complexity, image
FROM heroes
ORDER BY hero_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var heroes []*domain.Hero
	for rows.Next() {
		h := &domain.Hero{}
		var roles string
		if err := rows.Scan(&h.ID, &h.Name, &h.PrimaryAttr, &h.AttackType, &roles, &h.Complexity, &h.Image); err != nil {
			return nil, err
		}
		if roles != "" {
			h.Roles = strings.Split(roles, ",")
		}
		heroes = append(heroes, h)
	}
	return heroes, rows.Err()
}

// LastUpdated reports the most recent hero refresh, zero time when the
// table is empty.
func (r *HeroRepository) LastUpdated(ctx context.Context) (time.Time, error) {
	var ts sql.NullTime
	err := r.db.QueryRowContext(ctx, `SELECT MAX(updated_at) FROM heroes`).Scan(&ts)
	if err != nil {
		return time.Time{}, err
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	return ts.Time, nil
}
