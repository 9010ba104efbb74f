package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dota-tracker/internal/constants"
	"dota-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// MatchRepository persists normalized matches as a warm cache of the core
// fields plus player lines. Draft and time-series data are not stored;
// the fetch pipeline supplies them when a full match is needed.
type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(db *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{db: db, logger: logger}
}

const upsertMatchSQL = `
INSERT INTO matches (match_id, start_time, duration, radiant_win, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(match_id) DO UPDATE SET
    start_time = excluded.start_time,
    duration = excluded.duration,
    radiant_win = excluded.radiant_win,
    updated_at = excluded.updated_at`

const insertMatchPlayerSQL = `
INSERT INTO match_players (match_id, side, slot, hero_id, kills, deaths, assists, gpm, xpm, net_worth, last_hits, denies, items)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(match_id, side, slot) DO UPDATE SET
    hero_id = excluded.hero_id,
    kills = excluded.kills,
    deaths = excluded.deaths,
    assists = excluded.assists,
    gpm = excluded.gpm,
    xpm = excluded.xpm,
    net_worth = excluded.net_worth,
    last_hits = excluded.last_hits,
    denies = excluded.denies,
    items = excluded.items`

func (r *MatchRepository) UpsertBatch(ctx context.Context, matches []*domain.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for i := 0; i < len(matches); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(matches) {
			end = len(matches)
		}

		for _, m := range matches[i:end] {
			if _, err := tx.ExecContext(ctx, upsertMatchSQL,
				m.ID, m.StartTime, m.Duration, m.RadiantWin, now, now,
			); err != nil {
				return fmt.Errorf("failed to upsert match %d: %w", m.ID, err)
			}

			if err := upsertPlayers(ctx, tx, m.ID, domain.SideRadiant, m.Radiant); err != nil {
				return err
			}
			if err := upsertPlayers(ctx, tx, m.ID, domain.SideDire, m.Dire); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func upsertPlayers(ctx context.Context, tx *sql.Tx, matchID int64, side domain.Side, players []domain.PlayerMatchData) error {
	for slot, p := range players {
		if _, err := tx.ExecContext(ctx, insertMatchPlayerSQL,
			matchID, string(side), slot,
			p.HeroID, p.Kills, p.Deaths, p.Assists,
			p.GPM, p.XPM, p.NetWorth, p.LastHits, p.Denies,
			joinInts(p.Items),
		); err != nil {
			return fmt.Errorf("failed to upsert player %d/%s/%d: %w", matchID, side, slot, err)
		}
	}
	return nil
}

// GetByTeam loads the stored matches a team participated in, newest first.
func (r *MatchRepository) GetByTeam(ctx context.Context, teamID int64) ([]*domain.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT m.match_id, m.start_time, m.duration, m.radiant_win
FROM matches m
JOIN participations p ON p.match_id = m.match_id
WHERE p.team_id = ?
ORDER BY m.start_time DESC, m.match_id DESC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*domain.Match
	index := make(map[int64]*domain.Match)
	for rows.Next() {
		m := &domain.Match{}
		if err := rows.Scan(&m.ID, &m.StartTime, &m.Duration, &m.RadiantWin); err != nil {
			return nil, err
		}
		matches = append(matches, m)
		index[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []*domain.Match{}, nil
	}

	if err := r.attachPlayers(ctx, index); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *MatchRepository) attachPlayers(ctx context.Context, index map[int64]*domain.Match) error {
	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, strconv.FormatInt(id, 10))
	}

	query := fmt.Sprintf(`
SELECT match_id, side, slot, hero_id, kills, deaths, assists, gpm, xpm, net_worth, last_hits, denies, items
FROM match_players
WHERE match_id IN (%s)
ORDER BY match_id, side, slot`, strings.Join(ids, ","))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var matchID int64
		var side string
		var slot int
		var items string
		var p domain.PlayerMatchData
		if err := rows.Scan(&matchID, &side, &slot,
			&p.HeroID, &p.Kills, &p.Deaths, &p.Assists,
			&p.GPM, &p.XPM, &p.NetWorth, &p.LastHits, &p.Denies, &items,
		); err != nil {
			return err
		}
		p.Items = splitInts(items)

		m, ok := index[matchID]
		if !ok {
			continue
		}
		if domain.Side(side) == domain.SideRadiant {
			m.Radiant = append(m.Radiant, p)
		} else {
			m.Dire = append(m.Dire, p)
		}
	}
	return rows.Err()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
