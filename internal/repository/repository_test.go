// Package repository tests use testcontainers-go to spin up a PostgreSQL
// container. They are skipped when Docker is unavailable.
package repository

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"inova-palpites/internal/model"
	"inova-palpites/internal/pkg/db"
)

func checkDockerAvailable() bool {
	cmd := exec.Command("docker", "info")
	return cmd.Run() == nil
}

// setupTestDB creates a PostgreSQL container and returns a migrated pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if !checkDockerAvailable() {
		t.Skip("Docker is not available, skipping integration test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, db.Migrate(ctx, pool))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}
	return pool, cleanup
}

func seedUser(t *testing.T, repo *UserRepository, firstName, teamName string, isAdmin bool) *model.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &model.User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     "Tester",
		TeamName:     teamName,
		Email:        firstName + "+" + uuid.NewString() + "@example.com",
		PasswordHash: "x",
		IsAdmin:      isAdmin,
	})
	require.NoError(t, err)
	return user
}

func seedPlayer(t *testing.T, repo *PlayerRepository, name string) *model.Player {
	t.Helper()
	player, err := repo.Create(context.Background(), &model.Player{
		ID:   uuid.NewString(),
		Name: name,
		Team: "Time " + name,
	})
	require.NoError(t, err)
	return player
}

// seedRound creates a tournament with one round and two games, returning all ids.
func seedRound(t *testing.T, repo *TournamentRepository, deadline time.Time) (*model.Tournament, *model.Round, []*model.Game) {
	t.Helper()
	ctx := context.Background()

	tournament, err := repo.Create(ctx, &model.Tournament{ID: uuid.NewString(), Name: "Brasileirao"})
	require.NoError(t, err)

	round, err := repo.AddRound(ctx, &model.Round{
		ID:           uuid.NewString(),
		TournamentID: tournament.ID,
		Name:         "Rodada 1",
		Deadline:     deadline,
	})
	require.NoError(t, err)

	games := make([]*model.Game, 0, 2)
	for _, pair := range [][2]string{{"Time A", "Time B"}, {"Time C", "Time D"}} {
		game, err := repo.AddGame(ctx, &model.Game{
			ID:      uuid.NewString(),
			RoundID: round.ID,
			TeamA:   pair[0],
			TeamB:   pair[1],
		})
		require.NoError(t, err)
		games = append(games, game)
	}
	return tournament, round, games
}

func TestUserRepository(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewUserRepository(pool)

	alice := seedUser(t, repo, "Alice", "Real Alice", false)

	got, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Email, got.Email)
	assert.Equal(t, "Real Alice (Alice)", got.DisplayName())

	byEmail, err := repo.GetByEmail(ctx, alice.Email)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.Create(ctx, &model.User{
		ID: uuid.NewString(), FirstName: "Dup", LastName: "Dup", TeamName: "Dup",
		Email: alice.Email, PasswordHash: "x",
	})
	assert.ErrorIs(t, err, ErrEmailConflict)

	updated, err := repo.UpdateProfile(ctx, alice.ID, "Alicia", "Silva", "Real Alicia", "999")
	require.NoError(t, err)
	assert.Equal(t, "Real Alicia (Alicia)", updated.DisplayName())
	assert.Equal(t, "999", updated.Phone)
}

func TestUserRepositoryListNonAdmins(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewUserRepository(pool)
	seedUser(t, repo, "Admin", "Inova Corp", true)
	alice := seedUser(t, repo, "Alice", "Real Alice", false)
	bob := seedUser(t, repo, "Bob", "Atletico Bob", false)

	users, err := repo.ListNonAdmins(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	// Creation order is the stable leaderboard tie base.
	assert.Equal(t, alice.ID, users[0].ID)
	assert.Equal(t, bob.ID, users[1].ID)
}

func TestTournamentRepositoryAggregate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userRepo := NewUserRepository(pool)
	playerRepo := NewPlayerRepository(pool)
	repo := NewTournamentRepository(pool)
	betRepo := NewBetRepository(pool)

	alice := seedUser(t, userRepo, "Alice", "Real Alice", false)
	striker := seedPlayer(t, playerRepo, "Artilheiro")
	tournament, round, games := seedRound(t, repo, time.Now().Add(24*time.Hour))

	gameIDs := []string{games[0].ID, games[1].ID}
	_, err := betRepo.ReplaceForRound(ctx, alice.ID, round.ID, striker.ID, gameIDs, []model.Bet{
		{GameID: games[0].ID, ScoreA: 2, ScoreB: 1},
	})
	require.NoError(t, err)

	loaded, err := repo.GetByID(ctx, tournament.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Rounds, 1)
	require.Len(t, loaded.Rounds[0].Games, 2)
	assert.Equal(t, games[0].ID, loaded.Rounds[0].Games[0].ID)
	assert.False(t, loaded.Rounds[0].Games[0].HasResult())
	assert.Equal(t, striker.ID, loaded.Rounds[0].TopScorerPicks[alice.ID])
	assert.Empty(t, loaded.Rounds[0].Scorers)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrTournamentNotFound)

	_, err = repo.GetRound(ctx, uuid.NewString(), round.ID)
	assert.ErrorIs(t, err, ErrRoundNotFound)
}

func TestBetRepositoryReplaceForRound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userRepo := NewUserRepository(pool)
	playerRepo := NewPlayerRepository(pool)
	tournamentRepo := NewTournamentRepository(pool)
	repo := NewBetRepository(pool)

	alice := seedUser(t, userRepo, "Alice", "Real Alice", false)
	striker := seedPlayer(t, playerRepo, "Artilheiro")
	other := seedPlayer(t, playerRepo, "Matador")
	_, round, games := seedRound(t, tournamentRepo, time.Now().Add(24*time.Hour))
	gameIDs := []string{games[0].ID, games[1].ID}

	awarded, err := repo.ReplaceForRound(ctx, alice.ID, round.ID, striker.ID, gameIDs, []model.Bet{
		{GameID: games[0].ID, ScoreA: 2, ScoreB: 1},
		{GameID: games[1].ID, ScoreA: 0, ScoreB: 0},
	})
	require.NoError(t, err)
	assert.True(t, awarded, "first bet set ever should award the achievement")

	// Resubmission replaces the whole set and changes the pick.
	awarded, err = repo.ReplaceForRound(ctx, alice.ID, round.ID, other.ID, gameIDs, []model.Bet{
		{GameID: games[1].ID, ScoreA: 3, ScoreB: 2},
	})
	require.NoError(t, err)
	assert.False(t, awarded, "resubmission must not award the achievement again")

	bets, err := repo.ListForUserAndGames(ctx, alice.ID, gameIDs)
	require.NoError(t, err)
	require.Len(t, bets, 1)
	assert.Equal(t, games[1].ID, bets[0].GameID)
	assert.Equal(t, 3, bets[0].ScoreA)
	assert.Equal(t, 2, bets[0].ScoreB)

	round2, err := tournamentRepo.GetRound(ctx, round.TournamentID, round.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, round2.TopScorerPicks[alice.ID])

	achievementRepo := NewAchievementRepository(pool)
	achievements, err := achievementRepo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, achievements, 1)
	assert.Equal(t, model.AchievementFirstBet, achievements[0].Achievement)
}

func TestTournamentRepositoryReplaceResults(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	playerRepo := NewPlayerRepository(pool)
	repo := NewTournamentRepository(pool)

	striker := seedPlayer(t, playerRepo, "Artilheiro")
	_, round, games := seedRound(t, repo, time.Now().Add(-time.Hour))

	two, one, zero := 2, 1, 0
	games[0].FinalScoreA, games[0].FinalScoreB = &two, &one
	games[1].FinalScoreA, games[1].FinalScoreB = &zero, &zero
	scorers := map[string]int{striker.ID: 2}

	require.NoError(t, repo.ReplaceResults(ctx, round.ID, games, scorers))
	// Repeating with identical arguments fully supersedes, same end state.
	require.NoError(t, repo.ReplaceResults(ctx, round.ID, games, scorers))

	loaded, err := repo.GetRound(ctx, round.TournamentID, round.ID)
	require.NoError(t, err)
	assert.True(t, loaded.ResultsEntered)
	require.True(t, loaded.Games[0].HasResult())
	assert.Equal(t, 2, *loaded.Games[0].FinalScoreA)
	assert.Equal(t, map[string]int{striker.ID: 2}, loaded.Scorers)

	// A game id outside the round aborts the whole entry.
	bogus := &model.Game{ID: uuid.NewString(), TeamA: "X", TeamB: "Y"}
	err = repo.ReplaceResults(ctx, round.ID, []*model.Game{bogus}, nil)
	assert.ErrorIs(t, err, ErrGameNotFound)

	// Omitting a previously-recorded final score clears it.
	games[0].FinalScoreA, games[0].FinalScoreB = nil, nil
	require.NoError(t, repo.ReplaceResults(ctx, round.ID, games, scorers))
	loaded, err = repo.GetRound(ctx, round.TournamentID, round.ID)
	require.NoError(t, err)
	assert.False(t, loaded.Games[0].HasResult())
	assert.True(t, loaded.ResultsEntered)

	// A corrected entry that leaves a game out entirely supersedes its
	// previous result too; nothing stale survives the replacement.
	games[0].FinalScoreA, games[0].FinalScoreB = &two, &one
	require.NoError(t, repo.ReplaceResults(ctx, round.ID, games, scorers))
	require.NoError(t, repo.ReplaceResults(ctx, round.ID, games[:1], scorers))
	loaded, err = repo.GetRound(ctx, round.TournamentID, round.ID)
	require.NoError(t, err)
	require.True(t, loaded.Games[0].HasResult())
	assert.False(t, loaded.Games[1].HasResult())
}
