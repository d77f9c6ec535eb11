package reactions

import (
	"sync"
	"time"
)

const defaultStalenessWindow = 15 * time.Second

// Board keeps the newest sample per modality so the fuser always works from
// at most two observations. Analyzers submit concurrently; the fuser reads
// snapshots.
type Board struct {
	mu sync.RWMutex

	audio  *Sample
	visual *Sample

	stalenessWindow time.Duration
	now             func() time.Time
}

type BoardOption func(*Board)

// WithStalenessWindow overrides how long a sample stays eligible for fusion.
func WithStalenessWindow(window time.Duration) BoardOption {
	return func(b *Board) { b.stalenessWindow = window }
}

func NewBoard(opts ...BoardOption) *Board {
	b := &Board{
		stalenessWindow: defaultStalenessWindow,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Submit validates the sample and records it as the newest observation for
// its modality. Invalid samples are rejected without touching the board.
func (b *Board) Submit(sample Sample) error {
	if err := sample.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	switch sample.Modality {
	case ModalityAudio:
		b.audio = &sample
	case ModalityVisual:
		b.visual = &sample
	}
	return nil
}

// Latest returns copies of the newest sample per modality, dropping any that
// fell outside the staleness window. Either return may be nil.
func (b *Board) Latest() (audio, visual *Sample) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cutoff := b.now().Add(-b.stalenessWindow)
	if b.audio != nil && !b.audio.Timestamp.Before(cutoff) {
		sample := *b.audio
		audio = &sample
	}
	if b.visual != nil && !b.visual.Timestamp.Before(cutoff) {
		sample := *b.visual
		visual = &sample
	}
	return audio, visual
}

// Fuse reads the board's freshest samples and fuses them under the given
// combined label.
func (b *Board) Fuse(fallbackLabel string) FusedReaction {
	audio, visual := b.Latest()
	return Fuse(audio, visual, fallbackLabel)
}
