package reactions

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestFuseWithNoSamples(t *testing.T) {
	reaction := Fuse(nil, nil, "")

	if reaction.Vibe != VibeNeutral {
		t.Errorf("Expected neutral vibe, got %q", reaction.Vibe)
	}
	if reaction.SoundSummary != "calm" || reaction.FacesSummary != "calm" {
		t.Errorf("Expected calm summaries, got sound=%q faces=%q", reaction.SoundSummary, reaction.FacesSummary)
	}
}

func TestFuseMissAndScattered(t *testing.T) {
	audio := NewSample(ModalityAudio, VerdictMiss, "room went quiet")
	visual := NewSample(ModalityVisual, VerdictScattered, "")

	reaction := Fuse(&audio, &visual, "")

	if reaction.Vibe != VibeQuiet {
		t.Errorf("Expected quiet vibe, got %q", reaction.Vibe)
	}
	if reaction.SoundSummary != "quiet" {
		t.Errorf("Expected sound summary \"quiet\", got %q", reaction.SoundSummary)
	}
	if reaction.FacesSummary != "attention scattered" {
		t.Errorf("Expected faces summary \"attention scattered\", got %q", reaction.FacesSummary)
	}
}

func TestFuseIsDeterministic(t *testing.T) {
	ts := time.Date(2025, time.March, 1, 21, 0, 0, 0, time.UTC)
	audio := NewSample(ModalityAudio, VerdictHit, "big laugh", WithTimestamp(ts))
	visual := NewSample(ModalityVisual, VerdictLaughing, "front row lost it", WithTimestamp(ts.Add(time.Second)))

	first := Fuse(&audio, &visual, "lively")
	second := Fuse(&audio, &visual, "lively")

	if first != second {
		t.Errorf("Expected identical fusions, got %+v and %+v", first, second)
	}
	if !first.AsOf.Equal(ts.Add(time.Second)) {
		t.Errorf("Expected asOf to track the newest sample, got %v", first.AsOf)
	}
}

func TestFuseSoundSummaryTable(t *testing.T) {
	cases := []struct {
		verdict Verdict
		want    string
	}{
		{VerdictHit, "laughter heard"},
		{VerdictMixed, "light laughs"},
		{VerdictMiss, "quiet"},
		{VerdictUncertain, "unclear"},
	}
	for _, c := range cases {
		audio := NewSample(ModalityAudio, c.verdict, "")
		reaction := Fuse(&audio, nil, "")
		if reaction.SoundSummary != c.want {
			t.Errorf("Expected %q for verdict %q, got %q", c.want, c.verdict, reaction.SoundSummary)
		}
	}
}

func TestFuseUnmappedAudioVerdictScansRationale(t *testing.T) {
	audio := Sample{Modality: ModalityAudio, Verdict: Verdict("roaring"), Rationale: "they laughed hard"}
	reaction := Fuse(&audio, nil, "")
	if reaction.SoundSummary != "laughter heard" {
		t.Errorf("Expected rationale scan to report laughter, got %q", reaction.SoundSummary)
	}

	audio = Sample{Modality: ModalityAudio, Verdict: Verdict("flat"), Rationale: "completely silent room"}
	reaction = Fuse(&audio, nil, "")
	if reaction.SoundSummary != "quiet" {
		t.Errorf("Expected rationale scan to report quiet, got %q", reaction.SoundSummary)
	}

	audio = Sample{Modality: ModalityAudio, Verdict: Verdict("flat"), Rationale: "no signal"}
	reaction = Fuse(&audio, nil, "")
	if reaction.SoundSummary != "flat" {
		t.Errorf("Expected raw verdict pass-through, got %q", reaction.SoundSummary)
	}
}

func TestFuseUnknownLabelPassesThroughLowercased(t *testing.T) {
	reaction := Fuse(nil, nil, "Electric")
	if reaction.Vibe != Vibe("electric") {
		t.Errorf("Expected lower-cased pass-through vibe, got %q", reaction.Vibe)
	}
}

func TestFuseTruncatesVisualNote(t *testing.T) {
	note := strings.Repeat("x", 120)
	visual := NewSample(ModalityVisual, VerdictEnjoying, note)
	reaction := Fuse(nil, &visual, "")
	if len(reaction.RawRationale) != 70 {
		t.Errorf("Expected visual note truncated to 70 characters, got %d", len(reaction.RawRationale))
	}
}

func TestFuseTruncatesMultiByteVisualNoteOnRuneBoundary(t *testing.T) {
	note := strings.Repeat("ž", 120)
	visual := NewSample(ModalityVisual, VerdictEnjoying, note)
	reaction := Fuse(nil, &visual, "")
	if !utf8.ValidString(reaction.RawRationale) {
		t.Errorf("Expected truncated note to remain valid UTF-8, got %q", reaction.RawRationale)
	}
	if got := utf8.RuneCountInString(reaction.RawRationale); got != 70 {
		t.Errorf("Expected visual note truncated to 70 runes, got %d", got)
	}
}

func TestFuseLabelOnlySummariesFollowVibe(t *testing.T) {
	cases := []struct {
		label string
		sound string
		faces string
	}{
		{"big laugh / applause", "laughter heard", "smiles up"},
		{"small laugh / chatter", "light laughs", "a few smiles"},
		{"silence / groan", "quiet", "calm"},
		{"confusion", "unclear", "mixed signals"},
		{"", "calm", "calm"},
	}
	for _, c := range cases {
		reaction := Fuse(nil, nil, c.label)
		if reaction.SoundSummary != c.sound || reaction.FacesSummary != c.faces {
			t.Errorf("Expected sound=%q faces=%q for label %q, got sound=%q faces=%q",
				c.sound, c.faces, c.label, reaction.SoundSummary, reaction.FacesSummary)
		}
	}
}

func TestFuseLegacyCombinedLabels(t *testing.T) {
	cases := map[string]Vibe{
		"big laugh / applause":  VibeLively,
		"small laugh / chatter": VibeWarm,
		"silence / groan":       VibeQuiet,
		"confusion":             VibePuzzled,
	}
	for label, want := range cases {
		reaction := Fuse(nil, nil, label)
		if reaction.Vibe != want {
			t.Errorf("Expected %q for label %q, got %q", want, label, reaction.Vibe)
		}
	}
}
