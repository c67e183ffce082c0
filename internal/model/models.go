// Package model defines the data models for the prediction league.
package model

import "time"

// User represents a registered participant.
// Administrators manage tournaments and results; they never appear on the leaderboard.
type User struct {
	ID           string    `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     string    `db:"last_name" json:"lastName"`
	TeamName     string    `db:"team_name" json:"teamName"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	PasswordHash string    `db:"password_hash" json:"-"`
	AvatarURL    *string   `db:"avatar_url" json:"avatarUrl,omitempty"`
	IsAdmin      bool      `db:"is_admin" json:"isAdmin"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// DisplayName is the name shown on the leaderboard.
func (u *User) DisplayName() string {
	return u.TeamName + " (" + u.FirstName + ")"
}

// Player is a candidate top scorer, referenced by bets and rounds, never embedded.
type Player struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Team      string    `db:"team" json:"team"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Game is a single fixture inside a round. Final scores are either both
// present or both absent; absent means the result has not been recorded.
type Game struct {
	ID          string    `db:"id" json:"id"`
	RoundID     string    `db:"round_id" json:"roundId"`
	TeamA       string    `db:"team_a" json:"teamA"`
	TeamB       string    `db:"team_b" json:"teamB"`
	TeamALogo   *string   `db:"team_a_logo" json:"teamALogo,omitempty"`
	TeamBLogo   *string   `db:"team_b_logo" json:"teamBLogo,omitempty"`
	FinalScoreA *int      `db:"final_score_a" json:"finalScoreA,omitempty"`
	FinalScoreB *int      `db:"final_score_b" json:"finalScoreB,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// HasResult reports whether both final scores are recorded.
func (g *Game) HasResult() bool {
	return g.FinalScoreA != nil && g.FinalScoreB != nil
}

// Round is a batch of fixtures sharing one betting deadline.
// TopScorerPicks maps userID to the Player the user picked as round top
// scorer; Scorers maps playerID to goals scored, empty until results are in.
type Round struct {
	ID             string            `db:"id" json:"id"`
	TournamentID   string            `db:"tournament_id" json:"tournamentId"`
	Name           string            `db:"name" json:"name"`
	Deadline       time.Time         `db:"deadline" json:"deadline"`
	ResultsEntered bool              `db:"results_entered" json:"resultsEntered"`
	Games          []*Game           `json:"games"`
	TopScorerPicks map[string]string `json:"topScorerPicks"`
	Scorers        map[string]int    `json:"scorers"`
	CreatedAt      time.Time         `db:"created_at" json:"createdAt"`
}

// GameByID returns the round's game with the given id, or nil.
func (r *Round) GameByID(id string) *Game {
	for _, g := range r.Games {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// Tournament owns its rounds, ordered by creation.
type Tournament struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	ImageURL  *string   `db:"image_url" json:"imageUrl,omitempty"`
	Rounds    []*Round  `json:"rounds"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Bet is one user's predicted final score for one fixture.
// At most one bet exists per (user, game) pair at any time.
type Bet struct {
	UserID    string    `db:"user_id" json:"userId"`
	GameID    string    `db:"game_id" json:"gameId"`
	ScoreA    int       `db:"score_a" json:"scoreA"`
	ScoreB    int       `db:"score_b" json:"scoreB"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Score is a leaderboard row. It is recomputed on demand from bets and
// rounds and never persisted.
type Score struct {
	UserID         string  `json:"userId"`
	DisplayName    string  `json:"displayName"`
	AvatarURL      *string `json:"avatarUrl,omitempty"`
	TotalPoints    int     `json:"totalPoints"`
	ExactScores    int     `json:"exactScores"`
	TopScorerGoals int     `json:"topScorerGoals"`
}

// UserAchievement records an unlocked achievement, append-only.
type UserAchievement struct {
	UserID      string    `db:"user_id" json:"userId"`
	Achievement string    `db:"achievement" json:"achievement"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// Achievement kinds.
const (
	AchievementFirstBet        = "first_bet"
	AchievementPerfectRound    = "perfect_round"
	AchievementTopScorerGenius = "top_scorer_genius"
	AchievementHatTrick        = "hat_trick"
	AchievementPodiumFinish    = "podium_finish"
)
