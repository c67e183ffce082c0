package scoring

import "testing"

// TestOutcomeOf tests the three-way outcome classification.
func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		name     string
		scoreA   int
		scoreB   int
		expected Outcome
	}{
		{"home win", 2, 1, HomeWin},
		{"away win", 0, 3, AwayWin},
		{"draw", 1, 1, Draw},
		{"goalless draw", 0, 0, Draw},
		{"one-sided home win", 7, 0, HomeWin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := OutcomeOf(tt.scoreA, tt.scoreB)
			if result != tt.expected {
				t.Errorf("OutcomeOf(%d, %d) = %v, want %v", tt.scoreA, tt.scoreB, result, tt.expected)
			}
		})
	}
}

// TestGamePoints tests the point award for a single bet against a final score.
func TestGamePoints(t *testing.T) {
	tests := []struct {
		name      string
		betA      int
		betB      int
		finalA    int
		finalB    int
		points    int
		exact     bool
	}{
		{"exact 2-1", 2, 1, 2, 1, 3, true},
		{"exact goalless draw", 0, 0, 0, 0, 3, true},
		{"home win predicted, draw played", 1, 0, 0, 0, 0, false},
		{"correct outcome wrong score", 1, 0, 2, 0, 1, false},
		{"correct draw wrong score", 1, 1, 2, 2, 1, false},
		{"wrong outcome", 0, 2, 3, 1, 0, false},
		{"reversed score is wrong outcome", 1, 2, 2, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, exact := GamePoints(tt.betA, tt.betB, tt.finalA, tt.finalB)
			if points != tt.points || exact != tt.exact {
				t.Errorf("GamePoints(%d, %d, %d, %d) = (%d, %v), want (%d, %v)",
					tt.betA, tt.betB, tt.finalA, tt.finalB, points, exact, tt.points, tt.exact)
			}
		})
	}
}

// TestTopScorerPoints tests the goals-times-three award.
func TestTopScorerPoints(t *testing.T) {
	tests := []struct {
		name     string
		goals    int
		expected int
	}{
		{"two goals", 2, 6},
		{"one goal", 1, 3},
		{"zero goals gives nothing", 0, 0},
		{"negative tally gives nothing", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TopScorerPoints(tt.goals)
			if result != tt.expected {
				t.Errorf("TopScorerPoints(%d) = %d, want %d", tt.goals, result, tt.expected)
			}
		})
	}
}
