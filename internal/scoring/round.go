package scoring

import (
	"time"

	"inova-palpites/internal/model"
)

// RoundState is the lifecycle state of a round.
type RoundState int

const (
	// RoundOpen accepts new and modified bets.
	RoundOpen RoundState = iota
	// RoundLocked has passed its deadline but has no results yet.
	RoundLocked
	// RoundResulted has official results entered.
	RoundResulted
)

// String returns the lowercase state name.
func (s RoundState) String() string {
	switch s {
	case RoundOpen:
		return "open"
	case RoundLocked:
		return "locked"
	case RoundResulted:
		return "resulted"
	default:
		return "unknown"
	}
}

// StateOf derives the lifecycle state of a round at the given instant.
// There is no stored "locked" flag: the deadline is the single source of
// truth, re-evaluated on every read.
func StateOf(r *model.Round, now time.Time) RoundState {
	if r.ResultsEntered {
		return RoundResulted
	}
	if now.Before(r.Deadline) {
		return RoundOpen
	}
	return RoundLocked
}

// AcceptsBets reports whether the round takes bet submissions at the given
// instant. Only an open round does.
func AcceptsBets(r *model.Round, now time.Time) bool {
	return StateOf(r, now) == RoundOpen
}
