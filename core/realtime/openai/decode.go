package openai

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/crimeacs/kaufmannGPT/core/realtime"
)

type wireEvent struct {
	Type       string     `json:"type"`
	Delta      string     `json:"delta,omitempty"`
	Text       string     `json:"text,omitempty"`
	Transcript string     `json:"transcript,omitempty"`
	Error      *wireError `json:"error,omitempty"`
}

type wireError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeEvent converts one wire message to a realtime event. The API has
// emitted both the `response.text.*` and `response.output_text.*` spellings
// across versions, so both are accepted. Events outside the output vocabulary
// (session acks, rate limit notices) decode to nil and are skipped.
func decodeEvent(raw []byte) (realtime.Event, error) {
	var event wireEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal realtime event: %w", err)
	}

	switch event.Type {
	case "response.text.delta", "response.output_text.delta":
		return realtime.NewTextDeltaEvent(event.Delta), nil
	case "response.text.done", "response.output_text.done":
		return realtime.NewTextDoneEvent(event.Text), nil
	case "response.audio.delta", "response.output_audio.delta":
		if event.Delta == "" {
			return nil, nil
		}
		chunk, err := base64.StdEncoding.DecodeString(event.Delta)
		if err != nil {
			return nil, fmt.Errorf("failed to decode audio chunk: %w", err)
		}
		return realtime.NewAudioDeltaEvent(chunk), nil
	case "response.audio.done", "response.output_audio.done":
		return realtime.NewAudioDoneEvent(), nil
	case "response.audio_transcript.delta", "response.output_audio_transcript.delta":
		return realtime.NewTranscriptDeltaEvent(event.Delta), nil
	case "response.audio_transcript.done", "response.output_audio_transcript.done":
		return realtime.NewTranscriptDoneEvent(event.Transcript), nil
	case "response.done", "response.completed":
		return realtime.NewCompletedEvent(), nil
	case "error":
		message := "unknown error"
		if event.Error != nil {
			message = event.Error.Message
		}
		return realtime.NewErrorEvent(message), nil
	}
	return nil, nil
}
