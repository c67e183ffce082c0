package scoring

import (
	"sort"

	"inova-palpites/internal/model"
)

// Leaderboard computes the ranked score list for a tournament from an
// in-memory snapshot. It never mutates its inputs.
//
// Every non-administrator user gets a row, even with zero points. Only
// rounds with results entered contribute; within them, games whose final
// scores are still absent are skipped. The list is ordered descending by
// (totalPoints, exactScores, topScorerGoals); ties beyond that keep the
// order of the users slice, so repeated calls on identical input produce
// identical output.
func Leaderboard(t *model.Tournament, users []*model.User, bets []model.Bet) []model.Score {
	scores := make([]model.Score, 0, len(users))
	index := make(map[string]int, len(users))
	for _, u := range users {
		if u.IsAdmin {
			continue
		}
		index[u.ID] = len(scores)
		scores = append(scores, model.Score{
			UserID:      u.ID,
			DisplayName: u.DisplayName(),
			AvatarURL:   u.AvatarURL,
		})
	}

	if t == nil {
		return scores
	}

	betsByGame := make(map[string][]model.Bet, len(bets))
	for _, b := range bets {
		betsByGame[b.GameID] = append(betsByGame[b.GameID], b)
	}

	for _, round := range t.Rounds {
		if !round.ResultsEntered {
			continue
		}

		for _, game := range round.Games {
			if !game.HasResult() {
				// Games added after result entry may still be unresolved.
				continue
			}
			for _, bet := range betsByGame[game.ID] {
				i, ok := index[bet.UserID]
				if !ok {
					continue
				}
				points, exact := GamePoints(bet.ScoreA, bet.ScoreB, *game.FinalScoreA, *game.FinalScoreB)
				scores[i].TotalPoints += points
				if exact {
					scores[i].ExactScores++
				}
			}
		}

		for userID, playerID := range round.TopScorerPicks {
			i, ok := index[userID]
			if !ok {
				continue
			}
			goals := round.Scorers[playerID]
			if goals > 0 {
				scores[i].TotalPoints += TopScorerPoints(goals)
				scores[i].TopScorerGoals += goals
			}
		}
	}

	sort.SliceStable(scores, func(a, b int) bool {
		if scores[a].TotalPoints != scores[b].TotalPoints {
			return scores[a].TotalPoints > scores[b].TotalPoints
		}
		if scores[a].ExactScores != scores[b].ExactScores {
			return scores[a].ExactScores > scores[b].ExactScores
		}
		return scores[a].TopScorerGoals > scores[b].TopScorerGoals
	})

	return scores
}
