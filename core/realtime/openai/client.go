// Package openai implements the realtime channel over the OpenAI Realtime
// API websocket.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/codes"

	"github.com/crimeacs/kaufmannGPT/core/realtime"
)

const (
	defaultModel = "gpt-realtime"
	defaultVoice = "onyx"

	eventBufferSize = 64
)

// Channel is a realtime.Channel over a single websocket session. One Channel
// carries one conversation; callers serialize their exchanges.
type Channel struct {
	apiKey string
	model  string
	voice  string

	// dialURL overrides the default endpoint, used by tests.
	dialURL string

	ws      *websocket.Conn
	writeMu sync.Mutex

	mu        sync.Mutex
	connected bool

	events chan realtime.Event
	done   chan struct{}
}

type ChannelOption func(*Channel)

func WithModel(model string) ChannelOption {
	return func(c *Channel) { c.model = model }
}

func WithVoice(voice string) ChannelOption {
	return func(c *Channel) { c.voice = voice }
}

func NewChannel(apiKey string, opts ...ChannelOption) *Channel {
	c := &Channel{
		apiKey: apiKey,
		model:  defaultModel,
		voice:  defaultVoice,
		events: make(chan realtime.Event, eventBufferSize),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Channel) Connect(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "realtime.connect")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connected {
		return nil
	}

	urlValues := url.Values{}
	urlValues.Set("model", c.model)

	dialURL := (&url.URL{
		Scheme: "wss",
		Host:   "api.openai.com", Path: "/v1/realtime",
		RawQuery: urlValues.Encode(),
	}).String()
	if c.dialURL != "" {
		dialURL = c.dialURL
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, dialURL,
		http.Header{"Authorization": {"Bearer " + c.apiKey}})
	if err != nil {
		err = fmt.Errorf("failed to open realtime socket: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open realtime socket")
		return err
	}

	c.ws = conn
	c.connected = true

	// A fresh lifecycle per connection: a new done channel and a new event
	// buffer, so a reconnect gets a live stream and events buffered from a
	// dead session cannot leak into the next one.
	c.done = make(chan struct{})
	c.events = make(chan realtime.Event, eventBufferSize)
	go c.processIncomingMessages(ctx, conn, c.done, c.events)

	return nil
}

func (c *Channel) Configure(ctx context.Context, instructions string) error {
	_, span := tracer.Start(ctx, "realtime.configure")
	defer span.End()

	if err := c.sendWebsocketMessage(newSessionUpdateMessage(c.model, c.voice, instructions)); err != nil {
		err = fmt.Errorf("failed to send session update: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send session update")
		return err
	}
	return nil
}

func (c *Channel) SendUserText(ctx context.Context, text string) error {
	if err := c.sendWebsocketMessage(newUserTextMessage(text)); err != nil {
		return fmt.Errorf("failed to send user text: %w", err)
	}
	return nil
}

func (c *Channel) RequestResponse(ctx context.Context) error {
	if err := c.sendWebsocketMessage(newResponseCreateMessage(c.voice)); err != nil {
		return fmt.Errorf("failed to request response: %w", err)
	}
	return nil
}

func (c *Channel) NextEvent(ctx context.Context) (realtime.Event, error) {
	c.mu.Lock()
	done := c.done
	events := c.events
	c.mu.Unlock()

	select {
	case event := <-events:
		return event, nil
	case <-done:
		// Drain events that arrived before the close.
		select {
		case event := <-events:
			return event, nil
		default:
		}
		return nil, realtime.ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	c.connected = false

	signalClosed(c.done)
	if err := c.ws.Close(); err != nil {
		return fmt.Errorf("failed to close realtime socket: %w", err)
	}
	return nil
}

func signalClosed(done chan struct{}) {
	select {
	case <-done:
	default:
		close(done)
	}
}

func (c *Channel) processIncomingMessages(ctx context.Context, ws *websocket.Conn, done chan struct{}, events chan realtime.Event) {
	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				logger.ErrorContext(ctx, "Realtime socket read failed", "error", err)
			}
			// Mark the channel disconnected so a later Connect re-dials,
			// unless a newer connection already took over.
			c.mu.Lock()
			if c.ws == ws {
				c.connected = false
			}
			signalClosed(done)
			c.mu.Unlock()
			_ = ws.Close()
			return
		}

		event, err := decodeEvent(msg)
		if err != nil {
			logger.WarnContext(ctx, "Dropping undecodable realtime event", "error", err)
			continue
		}
		if event == nil {
			continue
		}

		select {
		case events <- event:
		case <-done:
			return
		}
	}
}

func (c *Channel) sendWebsocketMessage(msg any) error {
	c.mu.Lock()
	connected := c.connected
	c.mu.Unlock()
	if !connected {
		return realtime.ErrClosed
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteJSON(msg)
}
