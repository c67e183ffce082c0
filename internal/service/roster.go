package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"inova-palpites/internal/model"
	"inova-palpites/internal/repository"
)

// RosterService manages the top-scorer candidate pool.
type RosterService struct {
	playerRepo *repository.PlayerRepository
}

// NewRosterService creates a new RosterService instance.
func NewRosterService(playerRepo *repository.PlayerRepository) *RosterService {
	return &RosterService{playerRepo: playerRepo}
}

// AddPlayer registers a new top-scorer candidate.
func (s *RosterService) AddPlayer(ctx context.Context, name, team string) (*model.Player, error) {
	if name == "" || team == "" {
		return nil, fmt.Errorf("%w: player name and team are required", ErrValidation)
	}
	return s.playerRepo.Create(ctx, &model.Player{
		ID:   uuid.NewString(),
		Name: name,
		Team: team,
	})
}

// ListPlayers returns every candidate in creation order.
func (s *RosterService) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return s.playerRepo.List(ctx)
}
