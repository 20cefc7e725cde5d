package screener

import (
	"errors"
	"fmt"
)

// ErrInsufficientHistory marks a candidate whose series is too short for a cascade step.
var ErrInsufficientHistory = errors.New("insufficient history")

// Cascade stages, cheapest first.
const (
	StageFetch      = "fetch"
	StageNewHigh    = "new_high"
	StageVolume     = "volume_surge"
	StageTrend      = "trend"
	StageLagging    = "lagging_breakout"
	StageIndicators = "indicators"
)

// CandidateError is a per-symbol failure. It is counted and logged; it never
// aborts the pass.
type CandidateError struct {
	Symbol string
	Stage  string
	Err    error
}

func (e *CandidateError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Symbol, e.Stage, e.Err)
}

func (e *CandidateError) Unwrap() error { return e.Err }
