package service

import (
	"context"
	"fmt"
	"time"

	"inova-palpites/internal/model"
	"inova-palpites/internal/pkg/lock"
	"inova-palpites/internal/repository"
	"inova-palpites/internal/scoring"
)

// BetService handles bet submission. The current time is injected so the
// open/locked decision is deterministic under test.
type BetService struct {
	tournamentRepo *repository.TournamentRepository
	playerRepo     *repository.PlayerRepository
	betRepo        *repository.BetRepository
	userLock       *lock.UserLock
	now            func() time.Time
}

// NewBetService creates a new BetService instance. now may be nil, in
// which case time.Now is used.
func NewBetService(
	tournamentRepo *repository.TournamentRepository,
	playerRepo *repository.PlayerRepository,
	betRepo *repository.BetRepository,
	userLock *lock.UserLock,
	now func() time.Time,
) *BetService {
	if now == nil {
		now = time.Now
	}
	return &BetService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		betRepo:        betRepo,
		userLock:       userLock,
		now:            now,
	}
}

// BetInput is one predicted score in a submission.
type BetInput struct {
	GameID string `json:"gameId"`
	ScoreA int    `json:"scoreA"`
	ScoreB int    `json:"scoreB"`
}

// Submit atomically replaces the user's bets for a round together with the
// top-scorer pick. The round must still be open; locked and resulted
// rounds both reject the submission with ErrRoundClosed, leaving the prior
// set untouched. If this is the first bet set the user ever had accepted, a
// single first-bet achievement is appended.
func (s *BetService) Submit(
	ctx context.Context,
	tournamentID, roundID, userID string,
	bets []BetInput,
	topScorerID string,
) (awardedFirstBet bool, err error) {
	round, err := s.tournamentRepo.GetRound(ctx, tournamentID, roundID)
	if err != nil {
		return false, err
	}

	if !scoring.AcceptsBets(round, s.now()) {
		return false, ErrRoundClosed
	}

	if err := validateBets(round, bets); err != nil {
		return false, err
	}

	if topScorerID == "" {
		return false, fmt.Errorf("%w: top scorer pick is required", ErrValidation)
	}
	if _, err := s.playerRepo.GetByID(ctx, topScorerID); err != nil {
		return false, err
	}

	gameIDs := make([]string, len(round.Games))
	for i, g := range round.Games {
		gameIDs[i] = g.ID
	}
	replacement := make([]model.Bet, len(bets))
	for i, b := range bets {
		replacement[i] = model.Bet{UserID: userID, GameID: b.GameID, ScoreA: b.ScoreA, ScoreB: b.ScoreB}
	}

	err = s.userLock.WithLock(userID, func() error {
		awardedFirstBet, err = s.betRepo.ReplaceForRound(ctx, userID, roundID, topScorerID, gameIDs, replacement)
		return err
	})
	return awardedFirstBet, err
}

// validateBets rejects a submission before any mutation: every bet must
// reference a game in the target round, at most once, with non-negative
// scores.
func validateBets(round *model.Round, bets []BetInput) error {
	seen := make(map[string]bool, len(bets))
	for _, b := range bets {
		if b.ScoreA < 0 || b.ScoreB < 0 {
			return ErrNegativeScore
		}
		if round.GameByID(b.GameID) == nil {
			return fmt.Errorf("%w: game %s", ErrGameOutsideRound, b.GameID)
		}
		if seen[b.GameID] {
			return fmt.Errorf("%w: game %s", ErrDuplicateGameBet, b.GameID)
		}
		seen[b.GameID] = true
	}
	return nil
}
