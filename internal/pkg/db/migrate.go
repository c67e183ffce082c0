package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// migrations are applied in order on startup. Every statement is
// idempotent, so re-running on an existing database is safe.
var migrations = []struct {
	name string
	sql  string
}{
	{
		name: "users table",
		sql: `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			team_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			avatar_url TEXT,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_users_created ON users(created_at, id);
	`,
	},
	{
		name: "players table",
		sql: `
		CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			team TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`,
	},
	{
		name: "tournaments and rounds tables",
		sql: `
		CREATE TABLE IF NOT EXISTS tournaments (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			image_url TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			tournament_id TEXT NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			deadline TIMESTAMPTZ NOT NULL,
			results_entered BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_tournament ON rounds(tournament_id, created_at);
	`,
	},
	{
		name: "games table",
		sql: `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			round_id TEXT NOT NULL REFERENCES rounds(id) ON DELETE CASCADE,
			team_a TEXT NOT NULL,
			team_b TEXT NOT NULL,
			team_a_logo TEXT,
			team_b_logo TEXT,
			final_score_a INT,
			final_score_b INT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT games_result_pair CHECK ((final_score_a IS NULL) = (final_score_b IS NULL)),
			CONSTRAINT games_result_non_negative CHECK (
				(final_score_a IS NULL OR final_score_a >= 0) AND
				(final_score_b IS NULL OR final_score_b >= 0)
			)
		);
		CREATE INDEX IF NOT EXISTS idx_games_round ON games(round_id, created_at);
	`,
	},
	{
		name: "round top scorers and scorer tallies",
		sql: `
		CREATE TABLE IF NOT EXISTS round_top_scorers (
			round_id TEXT NOT NULL REFERENCES rounds(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL REFERENCES users(id),
			player_id TEXT NOT NULL REFERENCES players(id),
			PRIMARY KEY (round_id, user_id)
		);
		CREATE TABLE IF NOT EXISTS round_scorers (
			round_id TEXT NOT NULL REFERENCES rounds(id) ON DELETE CASCADE,
			player_id TEXT NOT NULL REFERENCES players(id),
			goals INT NOT NULL CHECK (goals >= 0),
			PRIMARY KEY (round_id, player_id)
		);
	`,
	},
	{
		name: "bets table",
		sql: `
		CREATE TABLE IF NOT EXISTS bets (
			user_id TEXT NOT NULL REFERENCES users(id),
			game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			score_a INT NOT NULL CHECK (score_a >= 0),
			score_b INT NOT NULL CHECK (score_b >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, game_id)
		);
		CREATE INDEX IF NOT EXISTS idx_bets_game ON bets(game_id);
	`,
	},
	{
		name: "user achievements table",
		sql: `
		CREATE TABLE IF NOT EXISTS user_achievements (
			user_id TEXT NOT NULL REFERENCES users(id),
			achievement TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, achievement)
		);
	`,
	},
}

// Migrate applies the database schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, m := range migrations {
		if _, err := pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %d (%s): %w", i+1, m.name, err)
		}
		log.Info().Int("migration", i+1).Str("name", m.name).Msg("Migration applied")
	}
	return nil
}
