package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"inova-palpites/internal/model"
)

// AchievementRepository reads the append-only achievement log. The
// first-bet trigger itself is written by BetRepository.ReplaceForRound so
// that it shares the bet replacement transaction.
type AchievementRepository struct {
	pool *pgxpool.Pool
}

// NewAchievementRepository creates a new AchievementRepository instance.
func NewAchievementRepository(pool *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{pool: pool}
}

// ListByUser returns a user's achievements, oldest first.
func (r *AchievementRepository) ListByUser(ctx context.Context, userID string) ([]model.UserAchievement, error) {
	const query = `
		SELECT user_id, achievement, created_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY created_at, achievement
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	var achievements []model.UserAchievement
	for rows.Next() {
		var a model.UserAchievement
		if err := rows.Scan(&a.UserID, &a.Achievement, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievements: %w", err)
	}
	return achievements, nil
}
