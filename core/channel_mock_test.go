package standup

import (
	"context"
	"sync"
	"time"

	"github.com/crimeacs/kaufmannGPT/core/realtime"
)

// scriptedChannel replays pre-scripted event sequences, one per requested
// response, and records every call in order.
type scriptedChannel struct {
	mu        sync.Mutex
	calls     []string
	sentTexts []string
	responses [][]realtime.Event
	queue     []realtime.Event

	eventDelay   time.Duration
	connectErr   error
	configureErr error
	sendErr      error
}

func (c *scriptedChannel) record(call string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
}

func (c *scriptedChannel) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.calls...)
}

func (c *scriptedChannel) Connect(_ context.Context) error {
	c.record("connect")
	return c.connectErr
}

func (c *scriptedChannel) Configure(_ context.Context, _ string) error {
	c.record("configure")
	return c.configureErr
}

func (c *scriptedChannel) SendUserText(_ context.Context, text string) error {
	c.record("send")
	if c.sendErr != nil {
		return c.sendErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sentTexts = append(c.sentTexts, text)
	return nil
}

func (c *scriptedChannel) RequestResponse(_ context.Context) error {
	c.record("request")
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.responses) > 0 {
		c.queue = append(c.queue, c.responses[0]...)
		c.responses = c.responses[1:]
	}
	return nil
}

func (c *scriptedChannel) NextEvent(ctx context.Context) (realtime.Event, error) {
	if c.eventDelay > 0 {
		time.Sleep(c.eventDelay)
	}

	c.mu.Lock()
	if len(c.queue) > 0 {
		event := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()
		return event, nil
	}
	c.mu.Unlock()

	<-ctx.Done()
	return nil, ctx.Err()
}

func (c *scriptedChannel) Close() error {
	c.record("close")
	return nil
}

func respondWith(events ...realtime.Event) []realtime.Event {
	return events
}
