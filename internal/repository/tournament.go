package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inova-palpites/internal/model"
)

// Errors for tournament aggregate operations.
var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrRoundNotFound      = errors.New("round not found")
	ErrGameNotFound       = errors.New("game not found")
)

// TournamentRepository handles the tournament aggregate: tournaments, their
// rounds, the rounds' games and the two per-round maps (top-scorer picks
// and scorer tallies).
type TournamentRepository struct {
	pool *pgxpool.Pool
}

// NewTournamentRepository creates a new TournamentRepository instance.
func NewTournamentRepository(pool *pgxpool.Pool) *TournamentRepository {
	return &TournamentRepository{pool: pool}
}

// Create inserts a new tournament.
func (r *TournamentRepository) Create(ctx context.Context, t *model.Tournament) (*model.Tournament, error) {
	const query = `
		INSERT INTO tournaments (id, name, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, name, image_url, created_at
	`

	var created model.Tournament
	err := r.pool.QueryRow(ctx, query, t.ID, t.Name, t.ImageURL).Scan(
		&created.ID, &created.Name, &created.ImageURL, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	created.Rounds = []*model.Round{}
	return &created, nil
}

// Update changes a tournament's name and cover image.
func (r *TournamentRepository) Update(ctx context.Context, id, name string, imageURL *string) error {
	const query = `UPDATE tournaments SET name = $2, image_url = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, name, imageURL)
	if err != nil {
		return fmt.Errorf("failed to update tournament: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTournamentNotFound
	}
	return nil
}

// Delete removes a tournament and, through cascades, its rounds and games.
func (r *TournamentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTournamentNotFound
	}
	return nil
}

// List returns every tournament without its rounds, in creation order.
func (r *TournamentRepository) List(ctx context.Context) ([]*model.Tournament, error) {
	const query = `SELECT id, name, image_url, created_at FROM tournaments ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []*model.Tournament
	for rows.Next() {
		var t model.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.ImageURL, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tournament: %w", err)
		}
		tournaments = append(tournaments, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournaments: %w", err)
	}
	return tournaments, nil
}

// GetByID loads the full tournament aggregate: rounds in creation order,
// each with its games (in creation order), top-scorer picks and scorer
// tallies. Returns ErrTournamentNotFound if absent.
func (r *TournamentRepository) GetByID(ctx context.Context, id string) (*model.Tournament, error) {
	const query = `SELECT id, name, image_url, created_at FROM tournaments WHERE id = $1`

	var t model.Tournament
	err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.ImageURL, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	if err := r.loadRounds(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TournamentRepository) loadRounds(ctx context.Context, t *model.Tournament) error {
	const query = `
		SELECT id, tournament_id, name, deadline, results_entered, created_at
		FROM rounds
		WHERE tournament_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, t.ID)
	if err != nil {
		return fmt.Errorf("failed to load rounds: %w", err)
	}
	defer rows.Close()

	t.Rounds = []*model.Round{}
	byID := make(map[string]*model.Round)
	var roundIDs []string
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return err
		}
		t.Rounds = append(t.Rounds, round)
		byID[round.ID] = round
		roundIDs = append(roundIDs, round.ID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating rounds: %w", err)
	}
	if len(roundIDs) == 0 {
		return nil
	}

	return r.fillRounds(ctx, roundIDs, byID)
}

func scanRound(row pgx.Row) (*model.Round, error) {
	var round model.Round
	err := row.Scan(
		&round.ID, &round.TournamentID, &round.Name,
		&round.Deadline, &round.ResultsEntered, &round.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan round: %w", err)
	}
	round.Games = []*model.Game{}
	round.TopScorerPicks = map[string]string{}
	round.Scorers = map[string]int{}
	return &round, nil
}

// fillRounds attaches games, top-scorer picks and scorer tallies to the
// rounds in byID.
func (r *TournamentRepository) fillRounds(ctx context.Context, roundIDs []string, byID map[string]*model.Round) error {
	const gamesQuery = `
		SELECT id, round_id, team_a, team_b, team_a_logo, team_b_logo, final_score_a, final_score_b, created_at
		FROM games
		WHERE round_id = ANY($1)
		ORDER BY created_at, id
	`
	gameRows, err := r.pool.Query(ctx, gamesQuery, roundIDs)
	if err != nil {
		return fmt.Errorf("failed to load games: %w", err)
	}
	defer gameRows.Close()
	for gameRows.Next() {
		var g model.Game
		err := gameRows.Scan(
			&g.ID, &g.RoundID, &g.TeamA, &g.TeamB,
			&g.TeamALogo, &g.TeamBLogo, &g.FinalScoreA, &g.FinalScoreB, &g.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan game: %w", err)
		}
		if round, ok := byID[g.RoundID]; ok {
			round.Games = append(round.Games, &g)
		}
	}
	if err := gameRows.Err(); err != nil {
		return fmt.Errorf("error iterating games: %w", err)
	}

	const picksQuery = `SELECT round_id, user_id, player_id FROM round_top_scorers WHERE round_id = ANY($1)`
	pickRows, err := r.pool.Query(ctx, picksQuery, roundIDs)
	if err != nil {
		return fmt.Errorf("failed to load top scorer picks: %w", err)
	}
	defer pickRows.Close()
	for pickRows.Next() {
		var roundID, userID, playerID string
		if err := pickRows.Scan(&roundID, &userID, &playerID); err != nil {
			return fmt.Errorf("failed to scan top scorer pick: %w", err)
		}
		if round, ok := byID[roundID]; ok {
			round.TopScorerPicks[userID] = playerID
		}
	}
	if err := pickRows.Err(); err != nil {
		return fmt.Errorf("error iterating top scorer picks: %w", err)
	}

	const scorersQuery = `SELECT round_id, player_id, goals FROM round_scorers WHERE round_id = ANY($1)`
	scorerRows, err := r.pool.Query(ctx, scorersQuery, roundIDs)
	if err != nil {
		return fmt.Errorf("failed to load scorer tallies: %w", err)
	}
	defer scorerRows.Close()
	for scorerRows.Next() {
		var roundID, playerID string
		var goals int
		if err := scorerRows.Scan(&roundID, &playerID, &goals); err != nil {
			return fmt.Errorf("failed to scan scorer tally: %w", err)
		}
		if round, ok := byID[roundID]; ok {
			round.Scorers[playerID] = goals
		}
	}
	if err := scorerRows.Err(); err != nil {
		return fmt.Errorf("error iterating scorer tallies: %w", err)
	}

	return nil
}

// GetRound loads one round with its games, picks and tallies, verifying it
// belongs to the given tournament. Returns ErrRoundNotFound otherwise.
func (r *TournamentRepository) GetRound(ctx context.Context, tournamentID, roundID string) (*model.Round, error) {
	const query = `
		SELECT id, tournament_id, name, deadline, results_entered, created_at
		FROM rounds
		WHERE id = $1 AND tournament_id = $2
	`

	round, err := scanRound(r.pool.QueryRow(ctx, query, roundID, tournamentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	byID := map[string]*model.Round{round.ID: round}
	if err := r.fillRounds(ctx, []string{round.ID}, byID); err != nil {
		return nil, err
	}
	return round, nil
}

// AddRound appends a round to a tournament.
func (r *TournamentRepository) AddRound(ctx context.Context, round *model.Round) (*model.Round, error) {
	const query = `
		INSERT INTO rounds (id, tournament_id, name, deadline)
		VALUES ($1, $2, $3, $4)
		RETURNING id, tournament_id, name, deadline, results_entered, created_at
	`

	created, err := scanRound(r.pool.QueryRow(ctx, query,
		round.ID, round.TournamentID, round.Name, round.Deadline,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to add round: %w", err)
	}
	return created, nil
}

// AddGame appends a game to a round. The caller has already verified the
// round belongs to the tournament it claims.
func (r *TournamentRepository) AddGame(ctx context.Context, game *model.Game) (*model.Game, error) {
	const query = `
		INSERT INTO games (id, round_id, team_a, team_b, team_a_logo, team_b_logo, final_score_a, final_score_b)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, round_id, team_a, team_b, team_a_logo, team_b_logo, final_score_a, final_score_b, created_at
	`

	var created model.Game
	err := r.pool.QueryRow(ctx, query,
		game.ID, game.RoundID, game.TeamA, game.TeamB,
		game.TeamALogo, game.TeamBLogo, game.FinalScoreA, game.FinalScoreB,
	).Scan(
		&created.ID, &created.RoundID, &created.TeamA, &created.TeamB,
		&created.TeamALogo, &created.TeamBLogo, &created.FinalScoreA, &created.FinalScoreB, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add game: %w", err)
	}
	return &created, nil
}

// ReplaceResults replaces a round's games and scorer tallies wholesale and
// marks the round resulted, all in one transaction. Calling it again fully
// supersedes the previous entry: games absent from the new payload lose
// any previously recorded result.
func (r *TournamentRepository) ReplaceResults(ctx context.Context, roundID string, games []*model.Game, scorers map[string]int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const updateGame = `
		UPDATE games
		SET team_a = $3, team_b = $4, team_a_logo = $5, team_b_logo = $6,
		    final_score_a = $7, final_score_b = $8
		WHERE id = $1 AND round_id = $2
	`
	suppliedIDs := make([]string, len(games))
	for i, g := range games {
		suppliedIDs[i] = g.ID
		result, err := tx.Exec(ctx, updateGame,
			g.ID, roundID, g.TeamA, g.TeamB, g.TeamALogo, g.TeamBLogo,
			g.FinalScoreA, g.FinalScoreB,
		)
		if err != nil {
			return fmt.Errorf("failed to update game %s: %w", g.ID, err)
		}
		if result.RowsAffected() == 0 {
			return ErrGameNotFound
		}
	}

	const clearOmitted = `
		UPDATE games
		SET final_score_a = NULL, final_score_b = NULL
		WHERE round_id = $1 AND NOT (id = ANY($2))
	`
	if _, err := tx.Exec(ctx, clearOmitted, roundID, suppliedIDs); err != nil {
		return fmt.Errorf("failed to clear omitted game results: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM round_scorers WHERE round_id = $1`, roundID); err != nil {
		return fmt.Errorf("failed to clear scorer tallies: %w", err)
	}
	const insertScorer = `INSERT INTO round_scorers (round_id, player_id, goals) VALUES ($1, $2, $3)`
	for playerID, goals := range scorers {
		if _, err := tx.Exec(ctx, insertScorer, roundID, playerID, goals); err != nil {
			return fmt.Errorf("failed to record scorer tally for %s: %w", playerID, err)
		}
	}

	result, err := tx.Exec(ctx, `UPDATE rounds SET results_entered = TRUE WHERE id = $1`, roundID)
	if err != nil {
		return fmt.Errorf("failed to mark round resulted: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrRoundNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}
	return nil
}
