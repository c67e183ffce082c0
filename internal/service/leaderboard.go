package service

import (
	"context"
	"errors"

	"inova-palpites/internal/model"
	"inova-palpites/internal/repository"
	"inova-palpites/internal/scoring"
)

// LeaderboardService assembles the snapshot the scoring engine consumes.
// It is read-only: unknown ids degrade to empty results, never errors.
type LeaderboardService struct {
	tournamentRepo *repository.TournamentRepository
	userRepo       *repository.UserRepository
	playerRepo     *repository.PlayerRepository
	betRepo        *repository.BetRepository
}

// NewLeaderboardService creates a new LeaderboardService instance.
func NewLeaderboardService(
	tournamentRepo *repository.TournamentRepository,
	userRepo *repository.UserRepository,
	playerRepo *repository.PlayerRepository,
	betRepo *repository.BetRepository,
) *LeaderboardService {
	return &LeaderboardService{
		tournamentRepo: tournamentRepo,
		userRepo:       userRepo,
		playerRepo:     playerRepo,
		betRepo:        betRepo,
	}
}

// Leaderboard computes the ranked score list for a tournament. An unknown
// tournament id yields an empty list: this is a query and "nothing to
// show" is a valid terminal state.
func (s *LeaderboardService) Leaderboard(ctx context.Context, tournamentID string) ([]model.Score, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repository.ErrTournamentNotFound) {
			return []model.Score{}, nil
		}
		return nil, err
	}

	users, err := s.userRepo.ListNonAdmins(ctx)
	if err != nil {
		return nil, err
	}

	var gameIDs []string
	for _, round := range tournament.Rounds {
		for _, game := range round.Games {
			gameIDs = append(gameIDs, game.ID)
		}
	}
	bets, err := s.betRepo.ListByGameIDs(ctx, gameIDs)
	if err != nil {
		return nil, err
	}

	return scoring.Leaderboard(tournament, users, bets), nil
}

// UserRoundBets is the per-user round view: the user's bets for the round
// and the resolved top-scorer pick, if any. Unknown ids degrade to an
// empty view.
type UserRoundBets struct {
	Bets      []model.Bet   `json:"bets"`
	TopScorer *model.Player `json:"topScorer,omitempty"`
}

// BetsForRound returns one user's bets and pick for a round.
func (s *LeaderboardService) BetsForRound(ctx context.Context, tournamentID, roundID, userID string) (*UserRoundBets, error) {
	view := &UserRoundBets{Bets: []model.Bet{}}

	round, err := s.tournamentRepo.GetRound(ctx, tournamentID, roundID)
	if err != nil {
		if errors.Is(err, repository.ErrRoundNotFound) {
			return view, nil
		}
		return nil, err
	}

	gameIDs := make([]string, len(round.Games))
	for i, g := range round.Games {
		gameIDs[i] = g.ID
	}
	bets, err := s.betRepo.ListForUserAndGames(ctx, userID, gameIDs)
	if err != nil {
		return nil, err
	}
	if bets != nil {
		view.Bets = bets
	}

	if playerID, ok := round.TopScorerPicks[userID]; ok {
		player, err := s.playerRepo.GetByID(ctx, playerID)
		if err != nil && !errors.Is(err, repository.ErrPlayerNotFound) {
			return nil, err
		}
		view.TopScorer = player
	}
	return view, nil
}
