package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inova-palpites/internal/model"
)

// ErrPlayerNotFound is returned when a player id does not exist.
var ErrPlayerNotFound = errors.New("player not found")

// PlayerRepository handles top-scorer candidate persistence.
type PlayerRepository struct {
	pool *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository instance.
func NewPlayerRepository(pool *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

// Create inserts a new player.
func (r *PlayerRepository) Create(ctx context.Context, player *model.Player) (*model.Player, error) {
	const query = `
		INSERT INTO players (id, name, team)
		VALUES ($1, $2, $3)
		RETURNING id, name, team, created_at
	`

	var created model.Player
	err := r.pool.QueryRow(ctx, query, player.ID, player.Name, player.Team).Scan(
		&created.ID, &created.Name, &created.Team, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return &created, nil
}

// GetByID retrieves a player by id. Returns ErrPlayerNotFound if absent.
func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*model.Player, error) {
	const query = `SELECT id, name, team, created_at FROM players WHERE id = $1`

	var player model.Player
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&player.ID, &player.Name, &player.Team, &player.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}

// List returns every player in creation order.
func (r *PlayerRepository) List(ctx context.Context) ([]*model.Player, error) {
	const query = `SELECT id, name, team, created_at FROM players ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []*model.Player
	for rows.Next() {
		var player model.Player
		if err := rows.Scan(&player.ID, &player.Name, &player.Team, &player.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, &player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}
	return players, nil
}
