package openai

// Outbound control messages for the realtime session. Each is a dedicated
// type so the wire shape is visible at the call site.

type sessionUpdateMessage struct {
	Type    string         `json:"type"`
	Session sessionPayload `json:"session"`
}

type sessionPayload struct {
	Type             string        `json:"type"`
	Model            string        `json:"model"`
	OutputModalities []string      `json:"output_modalities"`
	Audio            *audioPayload `json:"audio,omitempty"`
	Instructions     string        `json:"instructions,omitempty"`
}

type audioPayload struct {
	Output audioOutputPayload `json:"output"`
}

type audioOutputPayload struct {
	Format audioFormatPayload `json:"format"`
	Voice  string             `json:"voice"`
}

type audioFormatPayload struct {
	Type string `json:"type"`
	Rate int    `json:"rate"`
}

type conversationItemCreateMessage struct {
	Type string              `json:"type"`
	Item conversationPayload `json:"item"`
}

type conversationPayload struct {
	Type    string                `json:"type"`
	Role    string                `json:"role"`
	Content []contentPartsPayload `json:"content"`
}

type contentPartsPayload struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responseCreateMessage struct {
	Type     string          `json:"type"`
	Response responsePayload `json:"response"`
}

type responsePayload struct {
	OutputModalities []string      `json:"output_modalities"`
	Audio            *audioPayload `json:"audio,omitempty"`
}

func newSessionUpdateMessage(model, voice, instructions string) sessionUpdateMessage {
	return sessionUpdateMessage{
		Type: "session.update",
		Session: sessionPayload{
			Type:             "realtime",
			Model:            model,
			OutputModalities: []string{"audio", "text"},
			Audio:            pcmAudioPayload(voice),
			Instructions:     instructions,
		},
	}
}

func newUserTextMessage(text string) conversationItemCreateMessage {
	return conversationItemCreateMessage{
		Type: "conversation.item.create",
		Item: conversationPayload{
			Type: "message",
			Role: "user",
			Content: []contentPartsPayload{
				{Type: "input_text", Text: text},
			},
		},
	}
}

func newResponseCreateMessage(voice string) responseCreateMessage {
	return responseCreateMessage{
		Type: "response.create",
		Response: responsePayload{
			OutputModalities: []string{"audio", "text"},
			Audio:            pcmAudioPayload(voice),
		},
	}
}

func pcmAudioPayload(voice string) *audioPayload {
	return &audioPayload{
		Output: audioOutputPayload{
			Format: audioFormatPayload{Type: "audio/pcm", Rate: 24000},
			Voice:  voice,
		},
	}
}
