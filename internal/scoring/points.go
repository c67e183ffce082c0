// Package scoring implements the point calculation and ranking rules of the
// prediction league. Everything here is pure computation over an
// already-loaded snapshot; time is always an explicit argument.
package scoring

// Outcome is the win/loss/draw classification of a score pair, independent
// of the exact values.
type Outcome int

const (
	// HomeWin means the first side scored more.
	HomeWin Outcome = iota
	// AwayWin means the second side scored more.
	AwayWin
	// Draw means both sides scored the same.
	Draw
)

// Point values.
const (
	// ExactScorePoints is awarded when both predicted values match the final score.
	ExactScorePoints = 3
	// OutcomePoints is awarded when only the outcome was predicted correctly.
	OutcomePoints = 1
	// TopScorerPointsPerGoal multiplies the goals scored by a correct top-scorer pick.
	TopScorerPointsPerGoal = 3
)

// OutcomeOf classifies a score pair. A 0-0 is a Draw like any other equal
// pair; there is no special case.
func OutcomeOf(scoreA, scoreB int) Outcome {
	switch {
	case scoreA > scoreB:
		return HomeWin
	case scoreA < scoreB:
		return AwayWin
	default:
		return Draw
	}
}

// GamePoints returns the points a single bet earns against a final score,
// and whether it was an exact match. An exact match never also earns the
// outcome point.
func GamePoints(betA, betB, finalA, finalB int) (points int, exact bool) {
	if betA == finalA && betB == finalB {
		return ExactScorePoints, true
	}
	if OutcomeOf(betA, betB) == OutcomeOf(finalA, finalB) {
		return OutcomePoints, false
	}
	return 0, false
}

// TopScorerPoints returns the points a top-scorer pick earns for the given
// goal tally. A pick with zero recorded goals contributes nothing.
func TopScorerPoints(goals int) int {
	if goals <= 0 {
		return 0
	}
	return goals * TopScorerPointsPerGoal
}
