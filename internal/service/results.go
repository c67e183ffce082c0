package service

import (
	"context"
	"fmt"

	"inova-palpites/internal/model"
	"inova-palpites/internal/repository"
)

// ResultService handles official result entry. Administrator-only; the
// HTTP layer enforces the gate.
type ResultService struct {
	tournamentRepo *repository.TournamentRepository
}

// NewResultService creates a new ResultService instance.
func NewResultService(tournamentRepo *repository.TournamentRepository) *ResultService {
	return &ResultService{tournamentRepo: tournamentRepo}
}

// GameResultInput carries one game's result entry. Final scores may be
// omitted together, which clears any previously recorded result for that
// game; supplying only one of the pair is a validation error.
type GameResultInput struct {
	ID          string  `json:"id"`
	TeamA       string  `json:"teamA"`
	TeamB       string  `json:"teamB"`
	TeamALogo   *string `json:"teamALogo,omitempty"`
	TeamBLogo   *string `json:"teamBLogo,omitempty"`
	FinalScoreA *int    `json:"finalScoreA,omitempty"`
	FinalScoreB *int    `json:"finalScoreB,omitempty"`
}

// UpdateRoundResults replaces the round's games and scorer tallies
// wholesale and marks the round resulted. Every supplied game id must
// already belong to the round; an unknown id rejects the whole entry.
// Calling again with corrected figures fully supersedes the previous
// entry — games left out of the new payload lose any recorded result —
// and the leaderboard is recomputed on demand and never cached.
func (s *ResultService) UpdateRoundResults(
	ctx context.Context,
	tournamentID, roundID string,
	games []GameResultInput,
	scorers map[string]int,
) error {
	round, err := s.tournamentRepo.GetRound(ctx, tournamentID, roundID)
	if err != nil {
		return err
	}

	updates := make([]*model.Game, len(games))
	for i, g := range games {
		if round.GameByID(g.ID) == nil {
			return fmt.Errorf("%w: game %s is not part of round %s", repository.ErrGameNotFound, g.ID, roundID)
		}
		if (g.FinalScoreA == nil) != (g.FinalScoreB == nil) {
			return fmt.Errorf("%w: game %s has only one final score", ErrValidation, g.ID)
		}
		if g.FinalScoreA != nil && (*g.FinalScoreA < 0 || *g.FinalScoreB < 0) {
			return fmt.Errorf("%w: game %s has a negative final score", ErrValidation, g.ID)
		}
		if g.TeamA == "" || g.TeamB == "" {
			return fmt.Errorf("%w: game %s is missing a team name", ErrValidation, g.ID)
		}
		updates[i] = &model.Game{
			ID:          g.ID,
			RoundID:     roundID,
			TeamA:       g.TeamA,
			TeamB:       g.TeamB,
			TeamALogo:   g.TeamALogo,
			TeamBLogo:   g.TeamBLogo,
			FinalScoreA: g.FinalScoreA,
			FinalScoreB: g.FinalScoreB,
		}
	}

	for playerID, goals := range scorers {
		if goals < 0 {
			return fmt.Errorf("%w: player %s has a negative goal tally", ErrValidation, playerID)
		}
	}

	return s.tournamentRepo.ReplaceResults(ctx, roundID, updates, scorers)
}
