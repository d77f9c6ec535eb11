package reactions

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownVerdict marks a verdict outside the known vocabulary. Rejecting
// the sample keeps a malformed label from silently corrupting the escalation
// ladder downstream.
var ErrUnknownVerdict = errors.New("unknown verdict")

// Modality identifies which analyzer produced a sample.
type Modality string

const (
	ModalityAudio  Modality = "audio"
	ModalityVisual Modality = "visual"
)

// Verdict is a coarse classification of one modality's observation of the
// crowd. Audio analyzers emit hit/mixed/miss/uncertain; visual analyzers emit
// laughing/enjoying/scattered/neutral/uncertain.
type Verdict string

const (
	VerdictHit       Verdict = "hit"
	VerdictMixed     Verdict = "mixed"
	VerdictMiss      Verdict = "miss"
	VerdictUncertain Verdict = "uncertain"

	VerdictLaughing  Verdict = "laughing"
	VerdictEnjoying  Verdict = "enjoying"
	VerdictScattered Verdict = "scattered"
	VerdictNeutral   Verdict = "neutral"
)

const maxRationaleLength = 200

// Sample is one observation from one modality. It is immutable once created;
// analyzers produce them and only the fuser consumes them.
type Sample struct {
	Modality   Modality
	Verdict    Verdict
	Rationale  string
	Confidence *float64
	Timestamp  time.Time
}

// NewSample builds a sample, truncating the rationale to the allowed length
// and stamping the current time when none is provided.
func NewSample(modality Modality, verdict Verdict, rationale string, opts ...SampleOption) Sample {
	s := Sample{
		Modality:  modality,
		Verdict:   verdict,
		Rationale: truncate(rationale, maxRationaleLength),
		Timestamp: time.Now(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

type SampleOption func(*Sample)

func WithConfidence(confidence float64) SampleOption {
	return func(s *Sample) { s.Confidence = &confidence }
}

func WithTimestamp(timestamp time.Time) SampleOption {
	return func(s *Sample) { s.Timestamp = timestamp }
}

// Validate checks that the sample's modality and verdict belong to the known
// vocabulary and that confidence, when present, is within [0, 1].
func (s Sample) Validate() error {
	switch s.Modality {
	case ModalityAudio:
		switch s.Verdict {
		case VerdictHit, VerdictMixed, VerdictMiss, VerdictUncertain:
		default:
			return fmt.Errorf("audio sample carries verdict %q: %w", s.Verdict, ErrUnknownVerdict)
		}
	case ModalityVisual:
		switch s.Verdict {
		case VerdictLaughing, VerdictEnjoying, VerdictScattered, VerdictNeutral, VerdictUncertain:
		default:
			return fmt.Errorf("visual sample carries verdict %q: %w", s.Verdict, ErrUnknownVerdict)
		}
	default:
		return fmt.Errorf("unknown modality %q", s.Modality)
	}

	if s.Confidence != nil && (*s.Confidence < 0 || *s.Confidence > 1) {
		return fmt.Errorf("confidence %f outside [0, 1]", *s.Confidence)
	}
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
