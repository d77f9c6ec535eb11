package openai

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/crimeacs/kaufmannGPT/core/realtime"
)

func TestDecodeTextDelta(t *testing.T) {
	for _, wire := range []string{"response.text.delta", "response.output_text.delta"} {
		event, err := decodeEvent([]byte(`{"type":"` + wire + `","delta":"ha"}`))
		if err != nil {
			t.Fatalf("Failed to decode event: %v", err)
		}
		delta, ok := event.(realtime.TextDeltaEvent)
		if !ok {
			t.Fatalf("Expected TextDeltaEvent, got %T", event)
		}
		if delta.Delta != "ha" {
			t.Errorf("Expected delta \"ha\", got %q", delta.Delta)
		}
	}
}

func TestDecodeAudioDelta(t *testing.T) {
	chunk := []byte{0x01, 0x02, 0x03}
	encoded := base64.StdEncoding.EncodeToString(chunk)

	event, err := decodeEvent([]byte(`{"type":"response.output_audio.delta","delta":"` + encoded + `"}`))
	if err != nil {
		t.Fatalf("Failed to decode event: %v", err)
	}
	audio, ok := event.(realtime.AudioDeltaEvent)
	if !ok {
		t.Fatalf("Expected AudioDeltaEvent, got %T", event)
	}
	if !bytes.Equal(audio.Chunk, chunk) {
		t.Errorf("Expected decoded chunk %v, got %v", chunk, audio.Chunk)
	}
}

func TestDecodeAudioDeltaRejectsBadBase64(t *testing.T) {
	if _, err := decodeEvent([]byte(`{"type":"response.audio.delta","delta":"!!!"}`)); err == nil {
		t.Fatal("Expected error for invalid base64 audio")
	}
}

func TestDecodeTranscriptDone(t *testing.T) {
	event, err := decodeEvent([]byte(`{"type":"response.audio_transcript.done","transcript":"final line"}`))
	if err != nil {
		t.Fatalf("Failed to decode event: %v", err)
	}
	done, ok := event.(realtime.TranscriptDoneEvent)
	if !ok {
		t.Fatalf("Expected TranscriptDoneEvent, got %T", event)
	}
	if done.Transcript != "final line" {
		t.Errorf("Expected transcript \"final line\", got %q", done.Transcript)
	}
}

func TestDecodeCompleted(t *testing.T) {
	for _, wire := range []string{"response.done", "response.completed"} {
		event, err := decodeEvent([]byte(`{"type":"` + wire + `"}`))
		if err != nil {
			t.Fatalf("Failed to decode event: %v", err)
		}
		if _, ok := event.(realtime.CompletedEvent); !ok {
			t.Fatalf("Expected CompletedEvent, got %T", event)
		}
	}
}

func TestDecodeError(t *testing.T) {
	event, err := decodeEvent([]byte(`{"type":"error","error":{"message":"rate limited"}}`))
	if err != nil {
		t.Fatalf("Failed to decode event: %v", err)
	}
	errEvent, ok := event.(realtime.ErrorEvent)
	if !ok {
		t.Fatalf("Expected ErrorEvent, got %T", event)
	}
	if errEvent.Message != "rate limited" {
		t.Errorf("Expected message \"rate limited\", got %q", errEvent.Message)
	}
}

func TestDecodeSkipsUnknownEvents(t *testing.T) {
	event, err := decodeEvent([]byte(`{"type":"session.updated"}`))
	if err != nil {
		t.Fatalf("Expected unknown events to be skipped, got error: %v", err)
	}
	if event != nil {
		t.Errorf("Expected nil event, got %T", event)
	}
}
