package standup

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/crimeacs/kaufmannGPT/core/reactions"
)

// Turn is one performance exchange: one crowd read in, one delivered line
// out. Immutable once appended to history.
type Turn struct {
	ID                    string
	AudienceReactionLabel string
	AudienceContext       *reactions.FusedReaction
	Theme                 string
	PlannedText           *string
	ResultText            string
	ResultAudio           []byte
	HasAudio              bool
	Timestamp             time.Time
}

func newTurn(reactionLabel, theme string, audienceContext *reactions.FusedReaction, plannedText *string) Turn {
	return Turn{
		ID:                    uuid.NewString(),
		AudienceReactionLabel: reactionLabel,
		AudienceContext:       audienceContext,
		Theme:                 theme,
		PlannedText:           plannedText,
		Timestamp:             time.Now(),
	}
}

// PerformanceHistory is the append-only record of completed turns. Insertion
// order is significant for engagement statistics.
type PerformanceHistory struct {
	mu    sync.RWMutex
	turns []Turn
}

// Push appends a completed turn.
func (h *PerformanceHistory) Push(turn Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, turn)
}

// Len reports the number of completed turns.
func (h *PerformanceHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}

// Turns returns a deep copy of the history so callers can read it without
// holding any lock.
func (h *PerformanceHistory) Turns() []Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var turns []Turn
	if err := copier.CopyWithOption(&turns, h.turns, copier.Option{DeepCopy: true}); err != nil {
		// Fall back to a shallow copy rather than losing the read.
		turns = make([]Turn, len(h.turns))
		copy(turns, h.turns)
	}
	return turns
}
