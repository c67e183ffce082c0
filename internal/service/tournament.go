package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"inova-palpites/internal/model"
	"inova-palpites/internal/repository"
	"inova-palpites/internal/storage"
)

// TournamentService manages tournaments, rounds and games. All mutations
// here are administrator actions; the HTTP layer enforces the admin gate.
type TournamentService struct {
	tournamentRepo *repository.TournamentRepository
	uploader       storage.FileUploader
}

// NewTournamentService creates a new TournamentService instance.
func NewTournamentService(tournamentRepo *repository.TournamentRepository, uploader storage.FileUploader) *TournamentService {
	return &TournamentService{tournamentRepo: tournamentRepo, uploader: uploader}
}

// CreateTournament creates an empty tournament.
func (s *TournamentService) CreateTournament(ctx context.Context, name string, imageURL *string) (*model.Tournament, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", ErrValidation)
	}
	return s.tournamentRepo.Create(ctx, &model.Tournament{
		ID:       uuid.NewString(),
		Name:     name,
		ImageURL: imageURL,
	})
}

// UpdateTournament changes a tournament's name and cover image.
func (s *TournamentService) UpdateTournament(ctx context.Context, id, name string, imageURL *string) error {
	if name == "" {
		return fmt.Errorf("%w: tournament name is required", ErrValidation)
	}
	return s.tournamentRepo.Update(ctx, id, name, imageURL)
}

// DeleteTournament removes a tournament and everything it owns.
func (s *TournamentService) DeleteTournament(ctx context.Context, id string) error {
	return s.tournamentRepo.Delete(ctx, id)
}

// ListTournaments returns every tournament without rounds.
func (s *TournamentService) ListTournaments(ctx context.Context) ([]*model.Tournament, error) {
	return s.tournamentRepo.List(ctx)
}

// GetTournament loads the full aggregate.
func (s *TournamentService) GetTournament(ctx context.Context, id string) (*model.Tournament, error) {
	return s.tournamentRepo.GetByID(ctx, id)
}

// AddRound appends a round with the given betting deadline.
func (s *TournamentService) AddRound(ctx context.Context, tournamentID, name string, deadline time.Time) (*model.Round, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: round name is required", ErrValidation)
	}
	if deadline.IsZero() {
		return nil, fmt.Errorf("%w: round deadline is required", ErrValidation)
	}
	// Verify the tournament exists before inserting.
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.tournamentRepo.AddRound(ctx, &model.Round{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		Name:         name,
		Deadline:     deadline,
	})
}

// GameInput carries the fields of a new fixture.
type GameInput struct {
	TeamA     string  `json:"teamA"`
	TeamB     string  `json:"teamB"`
	TeamALogo *string `json:"teamALogo,omitempty"`
	TeamBLogo *string `json:"teamBLogo,omitempty"`
}

// AddGame appends a fixture to a round.
func (s *TournamentService) AddGame(ctx context.Context, tournamentID, roundID string, input GameInput) (*model.Game, error) {
	if input.TeamA == "" || input.TeamB == "" {
		return nil, fmt.Errorf("%w: both team names are required", ErrValidation)
	}
	if _, err := s.tournamentRepo.GetRound(ctx, tournamentID, roundID); err != nil {
		return nil, err
	}
	return s.tournamentRepo.AddGame(ctx, &model.Game{
		ID:        uuid.NewString(),
		RoundID:   roundID,
		TeamA:     input.TeamA,
		TeamB:     input.TeamB,
		TeamALogo: input.TeamALogo,
		TeamBLogo: input.TeamBLogo,
	})
}

// UploadCover stores a tournament cover image and records its public URL.
func (s *TournamentService) UploadCover(ctx context.Context, tournamentID, contentType string, body io.Reader) (string, error) {
	if s.uploader == nil {
		return "", ErrUploadsDisabled
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("covers/%s/%s", tournamentID, uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("failed to upload cover: %w", err)
	}

	if err := s.tournamentRepo.Update(ctx, tournamentID, tournament.Name, &result.Location); err != nil {
		return "", err
	}
	return result.Location, nil
}
