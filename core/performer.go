// Package standup drives a live comedy performance loop: crowd reactions come
// in, one spoken line goes out per turn over a realtime generation session.
package standup

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/crimeacs/kaufmannGPT/core/escalation"
	"github.com/crimeacs/kaufmannGPT/core/reactions"
	"github.com/crimeacs/kaufmannGPT/core/realtime"
	"github.com/crimeacs/kaufmannGPT/internal/utils"
)

const defaultCollectionDeadline = 30 * time.Second

const defaultOpener = "Good evening! I'm an AI doing stand-up, which means if I bomb tonight, I get to blame my training data."

const defaultInstructions = "You are a stand-up comedian performing live. " +
	"Never repeat a joke, premise, or signature phrasing already used in this session.\n\n" +
	"PERSONA & VOICE: Charming, curious, self-deprecating AI doing stand-up from a laptop. " +
	"Warm, playful, inclusive; a little nerdy. Plain words, minimal punctuation, no emojis, no stage directions.\n\n" +
	"CORE: Setup, misdirection, punch. Put the punch-word last. " +
	"Self-irony on misses; pivot fast. PG-13.\n\n" +
	"FORMAT: Output plain text only. Exactly two sentences. No lists, no hashtags, no emojis, no stage directions."

// Performer owns the single generation session and serializes turns against
// it. At most one turn is in flight at any time.
type Performer struct {
	channel realtime.Channel
	planner Planner
	board   *reactions.Board
	machine *escalation.Machine
	history PerformanceHistory

	theme              string
	bannedPhrases      []string
	collectionDeadline time.Duration
	opener             string
	instructions       string

	// turnMu is the single-flight lock: session setup, submission, and
	// collection all happen under it.
	turnMu sync.Mutex

	mu         sync.Mutex
	configured bool
	connected  bool
	closed     bool
	opened     bool

	turnCounter metric.Int64Counter
}

func NewPerformer(channel realtime.Channel, opts ...PerformerOption) *Performer {
	p := &Performer{
		channel:            channel,
		board:              reactions.NewBoard(),
		machine:            escalation.NewMachine(),
		collectionDeadline: defaultCollectionDeadline,
		opener:             defaultOpener,
		instructions:       defaultInstructions,
		bannedPhrases:      []string{"tough crowd", "crickets", "the audience"},
	}
	for _, opt := range opts {
		opt(p)
	}

	p.turnCounter, _ = meter.Int64Counter("standup.turns",
		metric.WithDescription("Completed performance turns"))

	return p
}

// SubmitReaction validates and records one analyzer observation. Rejected
// samples never reach the board.
func (p *Performer) SubmitReaction(modality reactions.Modality, verdict reactions.Verdict, rationale string, opts ...reactions.SampleOption) error {
	return p.board.Submit(reactions.NewSample(modality, verdict, rationale, opts...))
}

// UpdateTheme changes the performance theme for subsequent turns.
func (p *Performer) UpdateTheme(theme string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.theme = theme
}

// History returns a copy of the completed turns.
func (p *Performer) History() []Turn {
	return p.history.Turns()
}

// PerformTurn runs one full exchange: classify the crowd signal, optionally
// plan a line, submit it over the session, and collect the response. Turns
// are strictly serialized.
func (p *Performer) PerformTurn(ctx context.Context, reactionLabel string, opts ...TurnOption) (Turn, error) {
	turnOptions := TurnOptions{}
	for _, opt := range opts {
		opt(&turnOptions)
	}

	p.turnMu.Lock()
	defer p.turnMu.Unlock()

	ctx, span := tracer.Start(ctx, "perform turn")
	defer span.End()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return Turn{}, ErrPerformerClosed
	}
	theme := p.theme
	coldOpen := !p.opened
	p.mu.Unlock()
	if turnOptions.theme != nil {
		theme = *turnOptions.theme
	}

	if err := p.ensureSession(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to establish session")
		return Turn{}, err
	}

	latestAudio, latestVisual := p.board.Latest()
	fused := reactions.Fuse(latestAudio, latestVisual, reactionLabel)
	if turnOptions.fused != nil {
		fused = *turnOptions.fused
	}

	var plannedText *string
	tier := p.machine.Tier()

	if coldOpen {
		// No crowd signal exists yet; skip classification and deliver the
		// opener.
		plannedText = utils.Ptr(p.opener)
	} else {
		if verdict, ok := resolveVerdict(latestAudio, reactionLabel); ok {
			updatedTier, err := p.machine.Observe(verdict)
			if err != nil {
				span.RecordError(err)
				return Turn{}, err
			}
			tier = updatedTier
		} else {
			logger.WarnContext(ctx, "No classifiable crowd signal, keeping current tier", "label", reactionLabel)
		}

		if p.planner != nil {
			plannedText = p.planner.Plan(ctx, fused, tier, theme, p.bannedPhrases)
		}
	}
	span.SetAttributes(
		attribute.String("escalation.tier", string(tier)),
		attribute.Bool("turn.cold_open", coldOpen),
		attribute.Bool("turn.planned", plannedText != nil),
	)

	turn := newTurn(reactionLabel, theme, &fused, plannedText)

	if err := p.channel.SendUserText(ctx, buildUserMessage(fused, theme, plannedText, coldOpen)); err != nil {
		return Turn{}, p.failConnection(span, fmt.Errorf("failed to send turn input: %w", err))
	}
	if err := p.channel.RequestResponse(ctx); err != nil {
		return Turn{}, p.failConnection(span, fmt.Errorf("failed to request response: %w", err))
	}

	collected := collectResponse(ctx, p.channel, p.collectionDeadline)
	if collected.TimedOut {
		logger.WarnContext(ctx, "Response collection timed out, keeping partial result")
	}

	finalText := collected.FinalText()
	if finalText == "" {
		span.SetStatus(codes.Error, "turn produced no content")
		return Turn{}, ErrNoContent
	}

	turn.ResultText = finalText
	turn.ResultAudio = collected.Audio
	turn.HasAudio = collected.HasAudio()

	if tier == escalation.TierRoast && !coldOpen {
		// The ladder does not self-reset; the roast turn has now run.
		p.machine.ResetCycle()
	}

	p.mu.Lock()
	p.opened = true
	p.mu.Unlock()

	p.history.Push(turn)
	p.turnCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("escalation.tier", string(tier))))
	return turn, nil
}

// PerformAuto derives the reaction label from the newest audio sample and
// runs a turn with it.
func (p *Performer) PerformAuto(ctx context.Context, opts ...TurnOption) (Turn, error) {
	latestAudio, _ := p.board.Latest()

	label := "neutral"
	if latestAudio != nil {
		switch latestAudio.Verdict {
		case reactions.VerdictHit:
			label = "big laugh / applause"
		case reactions.VerdictMixed:
			label = "small laugh / chatter"
		case reactions.VerdictMiss:
			label = "silence / groan"
		case reactions.VerdictUncertain:
			label = "confusion"
		}
	}
	return p.PerformTurn(ctx, label, opts...)
}

// EscalationTier reports the strategy tier the next planned line would use.
func (p *Performer) EscalationTier() escalation.Tier {
	return p.machine.Tier()
}

// Disconnect tears down the session. Safe to call repeatedly.
func (p *Performer) Disconnect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.configured = false
	p.connected = false

	if err := p.channel.Close(); err != nil {
		return fmt.Errorf("failed to close duplex channel: %w", err)
	}
	return nil
}

// ensureSession lazily connects and configures the channel. Configuration is
// sent once per session; a failure leaves the session unconfigured so the
// next turn retries it.
func (p *Performer) ensureSession(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.connected {
		if err := p.channel.Connect(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrConnection, err)
		}
		p.connected = true
	}

	if !p.configured {
		if err := p.channel.Configure(ctx, p.instructions); err != nil {
			p.connected = false
			return fmt.Errorf("%w: %w", ErrConnection, err)
		}
		p.configured = true
	}
	return nil
}

func (p *Performer) failConnection(span trace.Span, err error) error {
	p.mu.Lock()
	p.configured = false
	p.connected = false
	p.mu.Unlock()

	wrapped := fmt.Errorf("%w: %w", ErrConnection, err)
	span.RecordError(wrapped)
	span.SetStatus(codes.Error, "duplex channel failed mid-turn")
	return wrapped
}

// resolveVerdict picks the verdict to classify: the newest audio sample
// wins, then a recognizable reaction label.
func resolveVerdict(latestAudio *reactions.Sample, label string) (reactions.Verdict, bool) {
	if latestAudio != nil {
		return latestAudio.Verdict, true
	}

	switch strings.ToLower(strings.TrimSpace(label)) {
	case "hit", "big laugh / applause":
		return reactions.VerdictHit, true
	case "mixed", "small laugh / chatter":
		return reactions.VerdictMixed, true
	case "miss", "silence / groan":
		return reactions.VerdictMiss, true
	case "uncertain", "confusion":
		return reactions.VerdictUncertain, true
	}
	return "", false
}

func buildUserMessage(fused reactions.FusedReaction, theme string, plannedText *string, coldOpen bool) string {
	if coldOpen && plannedText != nil {
		return fmt.Sprintf("Open the set with exactly this line: %s", *plannedText)
	}

	message := fmt.Sprintf("crowd, visual and audio description: %s.", fused)
	if theme != "" {
		message += fmt.Sprintf(" Current theme: %s.", theme)
	}
	if plannedText != nil {
		message += fmt.Sprintf(" Deliver exactly this line: %s", *plannedText)
	}
	return message
}
