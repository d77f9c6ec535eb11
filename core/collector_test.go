package standup

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/crimeacs/kaufmannGPT/core/realtime"
)

func queuedChannel(events ...realtime.Event) *scriptedChannel {
	return &scriptedChannel{queue: events}
}

func TestCollectAssemblesTextAndAudio(t *testing.T) {
	channel := queuedChannel(
		realtime.NewTextDeltaEvent("Why did "),
		realtime.NewTextDeltaEvent("I cross the road?"),
		realtime.NewAudioDeltaEvent([]byte{0x01}),
		realtime.NewAudioDeltaEvent([]byte{0x02}),
		realtime.NewCompletedEvent(),
	)

	collected := collectResponse(context.Background(), channel, time.Second)

	if collected.Text != "Why did I cross the road?" {
		t.Errorf("Expected concatenated text, got %q", collected.Text)
	}
	if !bytes.Equal(collected.Audio, []byte{0x01, 0x02}) {
		t.Errorf("Expected concatenated audio, got %v", collected.Audio)
	}
	if collected.TimedOut {
		t.Error("Expected no timeout")
	}
}

func TestCollectDoneOverridesDeltas(t *testing.T) {
	channel := queuedChannel(
		realtime.NewTextDeltaEvent("partial"),
		realtime.NewTextDoneEvent("final text"),
		realtime.NewCompletedEvent(),
	)

	collected := collectResponse(context.Background(), channel, time.Second)
	if collected.Text != "final text" {
		t.Errorf("Expected done value to win, got %q", collected.Text)
	}
}

func TestCollectEmptyDoneKeepsDeltas(t *testing.T) {
	channel := queuedChannel(
		realtime.NewTranscriptDeltaEvent("spoken "),
		realtime.NewTranscriptDeltaEvent("line"),
		realtime.NewTranscriptDoneEvent(""),
		realtime.NewCompletedEvent(),
	)

	collected := collectResponse(context.Background(), channel, time.Second)
	if collected.Transcript != "spoken line" {
		t.Errorf("Expected delta concatenation to stand, got %q", collected.Transcript)
	}
}

func TestCollectAudioOnly(t *testing.T) {
	channel := queuedChannel(
		realtime.NewAudioDeltaEvent([]byte{0x0a}),
		realtime.NewAudioDeltaEvent([]byte{0x0b}),
		realtime.NewAudioDoneEvent(),
		realtime.NewCompletedEvent(),
	)

	collected := collectResponse(context.Background(), channel, time.Second)
	if collected.Text != "" {
		t.Errorf("Expected empty text, got %q", collected.Text)
	}
	if !collected.HasAudio() {
		t.Error("Expected audio to be present")
	}
}

func TestCollectTextOnly(t *testing.T) {
	channel := queuedChannel(
		realtime.NewTextDeltaEvent("just words"),
		realtime.NewCompletedEvent(),
	)

	collected := collectResponse(context.Background(), channel, time.Second)
	if collected.HasAudio() {
		t.Error("Expected no audio")
	}
	if collected.Text != "just words" {
		t.Errorf("Expected concatenated text, got %q", collected.Text)
	}
}

func TestCollectTimeoutReturnsPartial(t *testing.T) {
	channel := queuedChannel(
		realtime.NewTextDeltaEvent("half a "),
		realtime.NewTextDeltaEvent("thought"),
	)

	collected := collectResponse(context.Background(), channel, 50*time.Millisecond)
	if !collected.TimedOut {
		t.Error("Expected timeout to be reported")
	}
	if collected.Text != "half a thought" {
		t.Errorf("Expected partial text kept, got %q", collected.Text)
	}
}

func TestCollectErrorEventKeepsPartial(t *testing.T) {
	channel := queuedChannel(
		realtime.NewAudioDeltaEvent([]byte{0x01}),
		realtime.NewAudioDeltaEvent([]byte{0x02}),
		realtime.NewErrorEvent("upstream content error"),
	)

	collected := collectResponse(context.Background(), channel, time.Second)
	if !bytes.Equal(collected.Audio, []byte{0x01, 0x02}) {
		t.Errorf("Expected partial audio kept, got %v", collected.Audio)
	}
	if collected.Text != "" {
		t.Errorf("Expected empty text, got %q", collected.Text)
	}
	if collected.TimedOut {
		t.Error("Expected error termination, not timeout")
	}
}

func TestFinalTextFallsBackToTranscript(t *testing.T) {
	collected := CollectedResponse{Transcript: "spoken only"}
	if collected.FinalText() != "spoken only" {
		t.Errorf("Expected transcript fallback, got %q", collected.FinalText())
	}
}
