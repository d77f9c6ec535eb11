package reactions

import (
	"fmt"
	"strings"
	"time"
)

// Vibe is the single normalized mood label embedded in generation prompts.
type Vibe string

const (
	VibeLively  Vibe = "lively"
	VibeWarm    Vibe = "warm"
	VibeQuiet   Vibe = "quiet"
	VibePuzzled Vibe = "puzzled"
	VibeNeutral Vibe = "neutral"
)

const maxVisualNoteLength = 70

// FusedReaction is the combined summary of the newest audio and visual
// samples. It is recomputed on every fusion and never accumulates history.
type FusedReaction struct {
	Vibe         Vibe
	FacesSummary string
	SoundSummary string
	RawRationale string
	AsOf         time.Time
}

// String renders the reaction as the short prompt-safe phrase handed to the
// generation session.
func (r FusedReaction) String() string {
	out := fmt.Sprintf("vibe: %s; sound: %s; faces: %s", r.Vibe, r.SoundSummary, r.FacesSummary)
	if r.RawRationale != "" {
		out += fmt.Sprintf(" (%s)", r.RawRationale)
	}
	return out
}

var soundSummaries = map[Verdict]string{
	VerdictHit:       "laughter heard",
	VerdictMixed:     "light laughs",
	VerdictMiss:      "quiet",
	VerdictUncertain: "unclear",
}

var facesSummaries = map[Verdict]string{
	VerdictLaughing:  "smiles up",
	VerdictEnjoying:  "a few smiles",
	VerdictScattered: "attention scattered",
	VerdictNeutral:   "calm",
	VerdictUncertain: "mixed signals",
}

// vibesByLabel resolves caller-supplied combined labels, including the
// verbose ones older analyzers emit, to a vibe.
var vibesByLabel = map[string]Vibe{
	"lively":                VibeLively,
	"warm":                  VibeWarm,
	"quiet":                 VibeQuiet,
	"puzzled":               VibePuzzled,
	"neutral":               VibeNeutral,
	"big laugh / applause":  VibeLively,
	"small laugh / chatter": VibeWarm,
	"silence / groan":       VibeQuiet,
	"confusion":             VibePuzzled,
}

var audioVibes = map[Verdict]Vibe{
	VerdictHit:       VibeLively,
	VerdictMixed:     VibeWarm,
	VerdictMiss:      VibeQuiet,
	VerdictUncertain: VibePuzzled,
}

var visualVibes = map[Verdict]Vibe{
	VerdictLaughing:  VibeLively,
	VerdictEnjoying:  VibeWarm,
	VerdictScattered: VibeQuiet,
}

// Fuse combines the latest sample per modality into one FusedReaction. Either
// sample may be nil; when both are, the fallback label alone shapes the
// result. Fuse never fails and has no side effects.
func Fuse(latestAudio, latestVisual *Sample, fallbackLabel string) FusedReaction {
	reaction := FusedReaction{
		Vibe:         VibeNeutral,
		SoundSummary: "calm",
		FacesSummary: "calm",
	}

	if fallbackLabel == "" {
		fallbackLabel = "neutral"
	}

	if latestAudio == nil && latestVisual == nil {
		reaction.Vibe = resolveVibe(nil, nil, fallbackLabel)
		reaction.SoundSummary, reaction.FacesSummary = summariesForVibe(reaction.Vibe, fallbackLabel)
		return reaction
	}

	if latestAudio != nil {
		reaction.SoundSummary = soundSummary(*latestAudio)
		reaction.RawRationale = strings.TrimSpace(latestAudio.Rationale)
		reaction.AsOf = latestAudio.Timestamp
	}
	if latestVisual != nil {
		reaction.FacesSummary = facesSummary(*latestVisual)
		if note := strings.TrimSpace(latestVisual.Rationale); note != "" {
			reaction.RawRationale = truncate(note, maxVisualNoteLength)
		}
		if latestVisual.Timestamp.After(reaction.AsOf) {
			reaction.AsOf = latestVisual.Timestamp
		}
	}

	reaction.Vibe = resolveVibe(latestAudio, latestVisual, fallbackLabel)
	return reaction
}

func soundSummary(sample Sample) string {
	if summary, ok := soundSummaries[sample.Verdict]; ok {
		return summary
	}

	rationale := strings.ToLower(sample.Rationale)
	switch {
	case strings.Contains(rationale, "laugh"):
		return "laughter heard"
	case strings.Contains(rationale, "silent"), strings.Contains(rationale, "quiet"):
		return "quiet"
	}
	return string(sample.Verdict)
}

// summariesForVibe derives sound and faces summaries when no sample carries
// them, so a label-only fusion still reads like a crowd description.
func summariesForVibe(vibe Vibe, label string) (sound, faces string) {
	switch vibe {
	case VibeLively:
		return "laughter heard", "smiles up"
	case VibeWarm:
		return "light laughs", "a few smiles"
	case VibeQuiet:
		return "quiet", "calm"
	case VibePuzzled:
		return "unclear", "mixed signals"
	case VibeNeutral:
		return "calm", "calm"
	}
	label = strings.ToLower(strings.TrimSpace(label))
	return label, label
}

func facesSummary(sample Sample) string {
	if summary, ok := facesSummaries[sample.Verdict]; ok {
		return summary
	}
	return string(sample.Verdict)
}

// resolveVibe prefers an explicit caller label, then lets the audio verdict
// dominate, then the visual one. Unknown labels pass through lower-cased so
// the caller's wording still reaches the prompt.
func resolveVibe(latestAudio, latestVisual *Sample, fallbackLabel string) Vibe {
	label := strings.ToLower(strings.TrimSpace(fallbackLabel))
	if vibe, ok := vibesByLabel[label]; ok {
		if label != "neutral" || (latestAudio == nil && latestVisual == nil) {
			return vibe
		}
	} else if label != "" && label != "neutral" {
		return Vibe(label)
	}

	if latestAudio != nil {
		if vibe, ok := audioVibes[latestAudio.Verdict]; ok {
			return vibe
		}
	}
	if latestVisual != nil {
		if vibe, ok := visualVibes[latestVisual.Verdict]; ok {
			return vibe
		}
	}
	return VibeNeutral
}
