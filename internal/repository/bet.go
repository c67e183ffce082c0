package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"inova-palpites/internal/model"
)

// BetRepository handles bet persistence. The bet pool is tournament-wide;
// replacement semantics are scoped to (user, round) through the round's
// game id set.
type BetRepository struct {
	pool *pgxpool.Pool
}

// NewBetRepository creates a new BetRepository instance.
func NewBetRepository(pool *pgxpool.Pool) *BetRepository {
	return &BetRepository{pool: pool}
}

// ReplaceForRound atomically replaces a user's bets for one round: prior
// bets on the round's games are deleted, the new set is inserted and the
// top-scorer pick is upserted, all in one transaction. No reader ever sees
// the old and new sets coexist.
//
// When this is the first bet set the user ever had accepted, a single
// first-bet achievement row is appended. The insert is conflict-free on
// repeat, so resubmissions never duplicate it. Returns whether the
// achievement was awarded by this call.
func (r *BetRepository) ReplaceForRound(
	ctx context.Context,
	userID, roundID, topScorerID string,
	gameIDs []string,
	bets []model.Bet,
) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Determined before the delete: a user whose only bets are in this
	// round has still had bets accepted before.
	var hadBets bool
	err = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bets WHERE user_id = $1)`, userID).Scan(&hadBets)
	if err != nil {
		return false, fmt.Errorf("failed to check prior bets: %w", err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM bets WHERE user_id = $1 AND game_id = ANY($2)`, userID, gameIDs)
	if err != nil {
		return false, fmt.Errorf("failed to clear prior bets: %w", err)
	}

	const insertBet = `INSERT INTO bets (user_id, game_id, score_a, score_b) VALUES ($1, $2, $3, $4)`
	for _, b := range bets {
		if _, err := tx.Exec(ctx, insertBet, userID, b.GameID, b.ScoreA, b.ScoreB); err != nil {
			return false, fmt.Errorf("failed to insert bet on game %s: %w", b.GameID, err)
		}
	}

	const upsertPick = `
		INSERT INTO round_top_scorers (round_id, user_id, player_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (round_id, user_id) DO UPDATE SET player_id = EXCLUDED.player_id
	`
	if _, err := tx.Exec(ctx, upsertPick, roundID, userID, topScorerID); err != nil {
		return false, fmt.Errorf("failed to record top scorer pick: %w", err)
	}

	awarded := false
	if !hadBets && len(bets) > 0 {
		const insertAchievement = `
			INSERT INTO user_achievements (user_id, achievement)
			VALUES ($1, $2)
			ON CONFLICT (user_id, achievement) DO NOTHING
		`
		result, err := tx.Exec(ctx, insertAchievement, userID, model.AchievementFirstBet)
		if err != nil {
			return false, fmt.Errorf("failed to record first bet achievement: %w", err)
		}
		awarded = result.RowsAffected() > 0
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit bet replacement: %w", err)
	}
	return awarded, nil
}

// ListByGameIDs returns every bet on the given games.
func (r *BetRepository) ListByGameIDs(ctx context.Context, gameIDs []string) ([]model.Bet, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}
	const query = `
		SELECT user_id, game_id, score_a, score_b, created_at
		FROM bets
		WHERE game_id = ANY($1)
		ORDER BY created_at, user_id, game_id
	`

	rows, err := r.pool.Query(ctx, query, gameIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}
	defer rows.Close()

	var bets []model.Bet
	for rows.Next() {
		var b model.Bet
		if err := rows.Scan(&b.UserID, &b.GameID, &b.ScoreA, &b.ScoreB, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bets: %w", err)
	}
	return bets, nil
}

// ListForUserAndGames returns one user's bets on the given games.
func (r *BetRepository) ListForUserAndGames(ctx context.Context, userID string, gameIDs []string) ([]model.Bet, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}
	const query = `
		SELECT user_id, game_id, score_a, score_b, created_at
		FROM bets
		WHERE user_id = $1 AND game_id = ANY($2)
		ORDER BY created_at, game_id
	`

	rows, err := r.pool.Query(ctx, query, userID, gameIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bets: %w", err)
	}
	defer rows.Close()

	var bets []model.Bet
	for rows.Next() {
		var b model.Bet
		if err := rows.Scan(&b.UserID, &b.GameID, &b.ScoreA, &b.ScoreB, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bets: %w", err)
	}
	return bets, nil
}
