// Package realtime defines the duplex generation channel abstraction and the
// closed set of events it emits. Wire protocols are converted to these
// variants at the boundary so nothing downstream matches on raw strings.
package realtime

import "time"

type Kind string

const (
	KindTextDelta       Kind = "text.delta"
	KindTextDone        Kind = "text.done"
	KindAudioDelta      Kind = "audio.delta"
	KindAudioDone       Kind = "audio.done"
	KindTranscriptDelta Kind = "transcript.delta"
	KindTranscriptDone  Kind = "transcript.done"
	KindCompleted       Kind = "completed"
	KindError           Kind = "error"
)

type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

type Base struct {
	kind      Kind
	timestamp time.Time
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}

// TextDeltaEvent carries one chunk of generated text.
type TextDeltaEvent struct {
	Base
	Delta string
}

func NewTextDeltaEvent(delta string) TextDeltaEvent {
	return TextDeltaEvent{Base: NewBase(KindTextDelta), Delta: delta}
}

// TextDoneEvent signals the end of the text stream. Text, when non-empty, is
// the authoritative final value.
type TextDoneEvent struct {
	Base
	Text string
}

func NewTextDoneEvent(text string) TextDoneEvent {
	return TextDoneEvent{Base: NewBase(KindTextDone), Text: text}
}

// AudioDeltaEvent carries one binary audio chunk, already decoded from the
// wire encoding.
type AudioDeltaEvent struct {
	Base
	Chunk []byte
}

func NewAudioDeltaEvent(chunk []byte) AudioDeltaEvent {
	return AudioDeltaEvent{Base: NewBase(KindAudioDelta), Chunk: chunk}
}

type AudioDoneEvent struct {
	Base
}

func NewAudioDoneEvent() AudioDoneEvent {
	return AudioDoneEvent{Base: NewBase(KindAudioDone)}
}

// TranscriptDeltaEvent carries one chunk of the audio transcript.
type TranscriptDeltaEvent struct {
	Base
	Delta string
}

func NewTranscriptDeltaEvent(delta string) TranscriptDeltaEvent {
	return TranscriptDeltaEvent{Base: NewBase(KindTranscriptDelta), Delta: delta}
}

type TranscriptDoneEvent struct {
	Base
	Transcript string
}

func NewTranscriptDoneEvent(transcript string) TranscriptDoneEvent {
	return TranscriptDoneEvent{Base: NewBase(KindTranscriptDone), Transcript: transcript}
}

// CompletedEvent signals normal end of a response.
type CompletedEvent struct {
	Base
}

func NewCompletedEvent() CompletedEvent {
	return CompletedEvent{Base: NewBase(KindCompleted)}
}

// ErrorEvent reports an upstream content error. Collection ends early but
// keeps whatever accumulated before it.
type ErrorEvent struct {
	Base
	Message string
}

func NewErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Base: NewBase(KindError), Message: message}
}
