// Package escalation tracks consecutive crowd misses and selects the
// recovery strategy for the next line.
package escalation

import (
	"fmt"
	"sync"

	"github.com/crimeacs/kaufmannGPT/core/reactions"
)

// Tier is the strategy level the planner works at.
type Tier string

const (
	// TierBaseline keeps the current approach, leaning on self-irony and
	// tighter delivery.
	TierBaseline Tier = "baseline"
	// TierSwitchEngine changes the rhetorical device or topic outright.
	TierSwitchEngine Tier = "switchEngine"
	// TierCallbackOrEscalate reaches back for a callback or sharpens the
	// current bit.
	TierCallbackOrEscalate Tier = "callbackOrEscalate"
	// TierRoast turns on the room itself. Terminal within a cycle; the
	// caller resets the machine after the roast turn runs.
	TierRoast Tier = "roast"
)

// Outcome is the coarse result of classifying a verdict.
type Outcome string

const (
	OutcomeHit     Outcome = "HIT"
	OutcomePartial Outcome = "PARTIAL"
	OutcomeMiss    Outcome = "MISS"
)

var outcomes = map[reactions.Verdict]Outcome{
	reactions.VerdictHit:      OutcomeHit,
	reactions.VerdictLaughing: OutcomeHit,

	reactions.VerdictMixed:    OutcomePartial,
	reactions.VerdictEnjoying: OutcomePartial,

	reactions.VerdictMiss:      OutcomeMiss,
	reactions.VerdictScattered: OutcomeMiss,
	reactions.VerdictNeutral:   OutcomeMiss,
	reactions.VerdictUncertain: OutcomeMiss,
}

// Classify maps a verdict to its outcome. Unrecognized verdicts fail loudly
// instead of silently counting as misses, since a miscount corrupts the
// ladder for the rest of the set.
func Classify(verdict reactions.Verdict) (Outcome, error) {
	outcome, ok := outcomes[verdict]
	if !ok {
		return "", fmt.Errorf("cannot classify verdict %q: %w", verdict, reactions.ErrUnknownVerdict)
	}
	return outcome, nil
}

// Machine counts consecutive misses for one performance session. The tier is
// always a pure function of the count.
type Machine struct {
	mu                sync.RWMutex
	consecutiveMisses int
}

func NewMachine() *Machine {
	return &Machine{}
}

// Observe classifies the verdict and updates the miss count atomically. A hit
// or partial resets the count; a miss increments it. The returned tier
// reflects the updated count.
func (m *Machine) Observe(verdict reactions.Verdict) (Tier, error) {
	outcome, err := Classify(verdict)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	switch outcome {
	case OutcomeHit, OutcomePartial:
		m.consecutiveMisses = 0
	case OutcomeMiss:
		m.consecutiveMisses++
	}
	return tierFor(m.consecutiveMisses), nil
}

// Tier reports the current strategy tier without mutating the count.
func (m *Machine) Tier() Tier {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return tierFor(m.consecutiveMisses)
}

// ConsecutiveMisses reports the current miss streak.
func (m *Machine) ConsecutiveMisses() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.consecutiveMisses
}

// ResetCycle zeroes the miss streak. The machine does not self-reset after a
// roast; whoever ran the roast turn calls this.
func (m *Machine) ResetCycle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.consecutiveMisses = 0
}

func tierFor(misses int) Tier {
	switch {
	case misses <= 0:
		return TierBaseline
	case misses == 1:
		return TierSwitchEngine
	case misses == 2:
		return TierCallbackOrEscalate
	default:
		return TierRoast
	}
}
