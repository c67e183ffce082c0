package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inova-palpites/internal/model"
)

func intPtr(v int) *int { return &v }

func testUser(id, team, first string) *model.User {
	return &model.User{ID: id, FirstName: first, TeamName: team}
}

// resultedRound builds a round with results entered and the given games.
func resultedRound(id string, games ...*model.Game) *model.Round {
	return &model.Round{
		ID:             id,
		Deadline:       time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC),
		ResultsEntered: true,
		Games:          games,
		TopScorerPicks: map[string]string{},
		Scorers:        map[string]int{},
	}
}

func TestLeaderboardExactScore(t *testing.T) {
	// Scenario: final 2-1, bet 2-1 earns 3 points and one exact score.
	round := resultedRound("r1", &model.Game{ID: "g1", FinalScoreA: intPtr(2), FinalScoreB: intPtr(1)})
	tournament := &model.Tournament{ID: "t1", Rounds: []*model.Round{round}}
	users := []*model.User{testUser("u1", "Real Alice", "Alice")}
	bets := []model.Bet{{UserID: "u1", GameID: "g1", ScoreA: 2, ScoreB: 1}}

	scores := Leaderboard(tournament, users, bets)
	require.Len(t, scores, 1)
	assert.Equal(t, 3, scores[0].TotalPoints)
	assert.Equal(t, 1, scores[0].ExactScores)
	assert.Equal(t, "Real Alice (Alice)", scores[0].DisplayName)
}

func TestLeaderboardDrawIsNotAHomeWin(t *testing.T) {
	// Scenario: final 0-0 is a draw; a 1-0 bet predicted a home win and earns nothing.
	round := resultedRound("r1", &model.Game{ID: "g1", FinalScoreA: intPtr(0), FinalScoreB: intPtr(0)})
	tournament := &model.Tournament{ID: "t1", Rounds: []*model.Round{round}}
	users := []*model.User{testUser("u1", "Real Alice", "Alice")}
	bets := []model.Bet{{UserID: "u1", GameID: "g1", ScoreA: 1, ScoreB: 0}}

	scores := Leaderboard(tournament, users, bets)
	require.Len(t, scores, 1)
	assert.Equal(t, 0, scores[0].TotalPoints)
	assert.Equal(t, 0, scores[0].ExactScores)
}

func TestLeaderboardCorrectOutcomeWrongScore(t *testing.T) {
	// Scenario: bet 1-0 against final 2-0, both home wins, earns 1 point.
	round := resultedRound("r1", &model.Game{ID: "g1", FinalScoreA: intPtr(2), FinalScoreB: intPtr(0)})
	tournament := &model.Tournament{ID: "t1", Rounds: []*model.Round{round}}
	users := []*model.User{testUser("u1", "Real Alice", "Alice")}
	bets := []model.Bet{{UserID: "u1", GameID: "g1", ScoreA: 1, ScoreB: 0}}

	scores := Leaderboard(tournament, users, bets)
	require.Len(t, scores, 1)
	assert.Equal(t, 1, scores[0].TotalPoints)
	assert.Equal(t, 0, scores[0].ExactScores)
}

func TestLeaderboardTopScorerPick(t *testing.T) {
	// A pick that scored 2 goals earns 6 points; a pick with no recorded
	// goals earns nothing.
	round := resultedRound("r1")
	round.TopScorerPicks = map[string]string{"u1": "p1", "u2": "p2"}
	round.Scorers = map[string]int{"p1": 2}
	tournament := &model.Tournament{ID: "t1", Rounds: []*model.Round{round}}
	users := []*model.User{
		testUser("u1", "Real Alice", "Alice"),
		testUser("u2", "Atletico Bob", "Bob"),
	}

	scores := Leaderboard(tournament, users, nil)
	require.Len(t, scores, 2)
	assert.Equal(t, "u1", scores[0].UserID)
	assert.Equal(t, 6, scores[0].TotalPoints)
	assert.Equal(t, 2, scores[0].TopScorerGoals)
	assert.Equal(t, 0, scores[1].TotalPoints)
	assert.Equal(t, 0, scores[1].TopScorerGoals)
}

func TestLeaderboardIgnoresUnresultedRounds(t *testing.T) {
	round := resultedRound("r1", &model.Game{ID: "g1", FinalScoreA: intPtr(2), FinalScoreB: intPtr(1)})
	round.ResultsEntered = false
	round.TopScorerPicks = map[string]string{"u1": "p1"}
	round.Scorers = map[string]int{"p1": 3}
	tournament := &model.Tournament{ID: "t1", Rounds: []*model.Round{round}}
	users := []*model.User{testUser("u1", "Real Alice", "Alice")}
	bets := []model.Bet{{UserID: "u1", GameID: "g1", ScoreA: 2, ScoreB: 1}}

	scores := Leaderboard(tournament, users, bets)
	require.Len(t, scores, 1)
	assert.Equal(t, 0, scores[0].TotalPoints)
	assert.Equal(t, 0, scores[0].ExactScores)
	assert.Equal(t, 0, scores[0].TopScorerGoals)
}

func TestLeaderboardSkipsGamesWithoutResult(t *testing.T) {
	// A game added after result entry may still be unresolved; it must not
	// contribute and must not crash the computation.
	round := resultedRound("r1",
		&model.Game{ID: "g1", FinalScoreA: intPtr(1), FinalScoreB: intPtr(0)},
		&model.Game{ID: "g2"},
	)
	tournament := &model.Tournament{ID: "t1", Rounds: []*model.Round{round}}
	users := []*model.User{testUser("u1", "Real Alice", "Alice")}
	bets := []model.Bet{
		{UserID: "u1", GameID: "g1", ScoreA: 1, ScoreB: 0},
		{UserID: "u1", GameID: "g2", ScoreA: 4, ScoreB: 4},
	}

	scores := Leaderboard(tournament, users, bets)
	require.Len(t, scores, 1)
	assert.Equal(t, 3, scores[0].TotalPoints)
}

func TestLeaderboardExcludesAdmins(t *testing.T) {
	tournament := &model.Tournament{ID: "t1"}
	admin := testUser("u1", "Inova Corp", "Admin")
	admin.IsAdmin = true
	users := []*model.User{admin, testUser("u2", "Real Alice", "Alice")}

	scores := Leaderboard(tournament, users, nil)
	require.Len(t, scores, 1)
	assert.Equal(t, "u2", scores[0].UserID)
}

func TestLeaderboardNilTournament(t *testing.T) {
	users := []*model.User{testUser("u1", "Real Alice", "Alice")}
	scores := Leaderboard(nil, users, nil)
	require.Len(t, scores, 1)
	assert.Equal(t, 0, scores[0].TotalPoints)
}

func TestLeaderboardTieBreaks(t *testing.T) {
	// u1 and u2 both finish with 4 points, but u2 has an exact score and
	// must rank above. u3 trails on points.
	round := resultedRound("r1",
		&model.Game{ID: "g1", FinalScoreA: intPtr(2), FinalScoreB: intPtr(1)},
		&model.Game{ID: "g2", FinalScoreA: intPtr(1), FinalScoreB: intPtr(1)},
	)
	round.TopScorerPicks = map[string]string{"u1": "p1"}
	round.Scorers = map[string]int{"p1": 1}
	tournament := &model.Tournament{ID: "t1", Rounds: []*model.Round{round}}
	users := []*model.User{
		testUser("u1", "Alpha", "Ana"),
		testUser("u2", "Beta", "Bia"),
		testUser("u3", "Gama", "Gil"),
	}
	bets := []model.Bet{
		// u1: outcome point on g1 (+1) plus pick (+3) = 4 points, 0 exact.
		{UserID: "u1", GameID: "g1", ScoreA: 1, ScoreB: 0},
		// u2: exact on g1 (+3) plus outcome on g2 (+1) = 4 points, 1 exact.
		{UserID: "u2", GameID: "g1", ScoreA: 2, ScoreB: 1},
		{UserID: "u2", GameID: "g2", ScoreA: 2, ScoreB: 2},
		// u3: wrong everywhere.
		{UserID: "u3", GameID: "g1", ScoreA: 0, ScoreB: 1},
	}

	scores := Leaderboard(tournament, users, bets)
	require.Len(t, scores, 3)
	assert.Equal(t, "u2", scores[0].UserID)
	assert.Equal(t, "u1", scores[1].UserID)
	assert.Equal(t, "u3", scores[2].UserID)
}

func TestLeaderboardStableOnFullTie(t *testing.T) {
	// Users with identical score triples keep their base order, call after call.
	tournament := &model.Tournament{ID: "t1"}
	users := []*model.User{
		testUser("u1", "Alpha", "Ana"),
		testUser("u2", "Beta", "Bia"),
		testUser("u3", "Gama", "Gil"),
	}

	first := Leaderboard(tournament, users, nil)
	second := Leaderboard(tournament, users, nil)
	require.Len(t, first, 3)
	for i := range first {
		assert.Equal(t, users[i].ID, first[i].UserID)
		assert.Equal(t, first[i], second[i])
	}
}
