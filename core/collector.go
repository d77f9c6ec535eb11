package standup

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/crimeacs/kaufmannGPT/core/realtime"
)

// CollectedResponse is the assembled artifact of one response stream.
type CollectedResponse struct {
	Text       string
	Transcript string
	Audio      []byte
	TimedOut   bool
}

// HasAudio reports whether any audio arrived.
func (r CollectedResponse) HasAudio() bool {
	return len(r.Audio) > 0
}

// FinalText resolves the speakable line: explicit text first, transcript as
// the fallback. A response with audio always keeps a caption when either
// modality produced one.
func (r CollectedResponse) FinalText() string {
	if r.Text != "" {
		return r.Text
	}
	return r.Transcript
}

// collectResponse drains the channel's events into one response, bounded by
// the deadline. Timeouts and upstream error events both end collection early
// with whatever accumulated; neither is raised as an error here.
func collectResponse(ctx context.Context, channel realtime.Channel, deadline time.Duration) CollectedResponse {
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	var (
		textParts       strings.Builder
		transcriptParts strings.Builder
		textDone        string
		transcriptDone  string
		audio           []byte
		response        CollectedResponse
	)

	for {
		event, err := channel.NextEvent(ctx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				response.TimedOut = true
			}
			break
		}

		switch event := event.(type) {
		case realtime.TextDeltaEvent:
			textParts.WriteString(event.Delta)
		case realtime.TextDoneEvent:
			textDone = event.Text
		case realtime.TranscriptDeltaEvent:
			transcriptParts.WriteString(event.Delta)
		case realtime.TranscriptDoneEvent:
			transcriptDone = event.Transcript
		case realtime.AudioDeltaEvent:
			audio = append(audio, event.Chunk...)
		case realtime.AudioDoneEvent:
		case realtime.CompletedEvent:
			return finalize(response, textParts.String(), transcriptParts.String(), textDone, transcriptDone, audio)
		case realtime.ErrorEvent:
			logger.WarnContext(ctx, "Response stream reported an error, keeping partial result", "error", event.Message)
			return finalize(response, textParts.String(), transcriptParts.String(), textDone, transcriptDone, audio)
		}
	}

	return finalize(response, textParts.String(), transcriptParts.String(), textDone, transcriptDone, audio)
}

// finalize applies the done-overrides: a non-empty *.done value is
// authoritative, otherwise the concatenated deltas stand.
func finalize(response CollectedResponse, text, transcript, textDone, transcriptDone string, audio []byte) CollectedResponse {
	response.Text = text
	if textDone != "" {
		response.Text = textDone
	}
	response.Transcript = transcript
	if transcriptDone != "" {
		response.Transcript = transcriptDone
	}
	response.Audio = audio
	return response
}
