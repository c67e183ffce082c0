// Property-based tests for the scoring rules.
package scoring

import (
	"fmt"
	"testing"
	"time"

	"pgregory.net/rapid"

	"inova-palpites/internal/model"
)

// TestGamePointsProperty checks the invariants of the per-game award:
// points are always one of {0, 1, 3}, the 3-point award coincides exactly
// with a full score match, and the 1-point award coincides exactly with a
// matching outcome on a non-exact bet. Exact and outcome awards are
// mutually exclusive.
func TestGamePointsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		betA := rapid.IntRange(0, 12).Draw(t, "betA")
		betB := rapid.IntRange(0, 12).Draw(t, "betB")
		finalA := rapid.IntRange(0, 12).Draw(t, "finalA")
		finalB := rapid.IntRange(0, 12).Draw(t, "finalB")

		points, exact := GamePoints(betA, betB, finalA, finalB)

		isExact := betA == finalA && betB == finalB
		sameOutcome := OutcomeOf(betA, betB) == OutcomeOf(finalA, finalB)

		if exact != isExact {
			t.Fatalf("GamePoints(%d,%d,%d,%d) exact=%v, want %v", betA, betB, finalA, finalB, exact, isExact)
		}
		switch {
		case isExact:
			if points != ExactScorePoints {
				t.Fatalf("exact bet earned %d points, want %d", points, ExactScorePoints)
			}
		case sameOutcome:
			if points != OutcomePoints {
				t.Fatalf("outcome bet earned %d points, want %d", points, OutcomePoints)
			}
		default:
			if points != 0 {
				t.Fatalf("wrong bet earned %d points, want 0", points)
			}
		}
	})
}

// TestLeaderboardOrderingProperty checks that for any random tournament
// snapshot the leaderboard is sorted by the three-tier comparison, contains
// exactly the non-admin users, and is deterministic across repeated calls.
func TestLeaderboardOrderingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numUsers := rapid.IntRange(1, 20).Draw(t, "numUsers")
		users := make([]*model.User, numUsers)
		for i := range users {
			users[i] = &model.User{
				ID:        fmt.Sprintf("u%d", i),
				FirstName: rapid.StringMatching(`[a-z]{3,8}`).Draw(t, "firstName"),
				TeamName:  rapid.StringMatching(`[a-z]{3,8}`).Draw(t, "teamName"),
				IsAdmin:   rapid.IntRange(0, 9).Draw(t, "adminDie") == 0,
			}
		}

		numGames := rapid.IntRange(0, 6).Draw(t, "numGames")
		games := make([]*model.Game, numGames)
		var bets []model.Bet
		for gi := range games {
			id := fmt.Sprintf("g%d", gi)
			games[gi] = &model.Game{ID: id}
			if rapid.Bool().Draw(t, "hasResult") {
				a := rapid.IntRange(0, 6).Draw(t, "finalA")
				b := rapid.IntRange(0, 6).Draw(t, "finalB")
				games[gi].FinalScoreA = &a
				games[gi].FinalScoreB = &b
			}
			for ui := range users {
				if rapid.Bool().Draw(t, "hasBet") {
					bets = append(bets, model.Bet{
						UserID: users[ui].ID,
						GameID: id,
						ScoreA: rapid.IntRange(0, 6).Draw(t, "betA"),
						ScoreB: rapid.IntRange(0, 6).Draw(t, "betB"),
					})
				}
			}
		}

		round := &model.Round{
			ID:             "r0",
			Deadline:       time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC),
			ResultsEntered: rapid.Bool().Draw(t, "resultsEntered"),
			Games:          games,
			TopScorerPicks: map[string]string{},
			Scorers:        map[string]int{},
		}
		for ui := range users {
			if rapid.Bool().Draw(t, "hasPick") {
				round.TopScorerPicks[users[ui].ID] = "p0"
			}
		}
		round.Scorers["p0"] = rapid.IntRange(0, 5).Draw(t, "goals")

		tournament := &model.Tournament{ID: "t0", Rounds: []*model.Round{round}}

		scores := Leaderboard(tournament, users, bets)

		nonAdmins := 0
		for _, u := range users {
			if !u.IsAdmin {
				nonAdmins++
			}
		}
		if len(scores) != nonAdmins {
			t.Fatalf("got %d rows, want %d non-admin users", len(scores), nonAdmins)
		}

		for i := 1; i < len(scores); i++ {
			prev, cur := scores[i-1], scores[i]
			if prev.TotalPoints < cur.TotalPoints {
				t.Fatalf("row %d out of order by points: %d < %d", i, prev.TotalPoints, cur.TotalPoints)
			}
			if prev.TotalPoints == cur.TotalPoints && prev.ExactScores < cur.ExactScores {
				t.Fatalf("row %d out of order by exact scores", i)
			}
			if prev.TotalPoints == cur.TotalPoints && prev.ExactScores == cur.ExactScores &&
				prev.TopScorerGoals < cur.TopScorerGoals {
				t.Fatalf("row %d out of order by top scorer goals", i)
			}
		}

		if !round.ResultsEntered {
			for _, s := range scores {
				if s.TotalPoints != 0 || s.ExactScores != 0 || s.TopScorerGoals != 0 {
					t.Fatalf("unresulted round contributed points: %+v", s)
				}
			}
		}

		again := Leaderboard(tournament, users, bets)
		for i := range scores {
			if scores[i] != again[i] {
				t.Fatalf("leaderboard not deterministic at row %d: %+v vs %+v", i, scores[i], again[i])
			}
		}
	})
}
