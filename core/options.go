package standup

import (
	"context"
	"time"

	"github.com/crimeacs/kaufmannGPT/core/escalation"
	"github.com/crimeacs/kaufmannGPT/core/reactions"
)

type PerformerOption func(*Performer)

// Planner drafts an optional line ahead of synthesis. A nil result means no
// plan; the session generates on its own.
type Planner interface {
	Plan(ctx context.Context, reaction reactions.FusedReaction, tier escalation.Tier, theme string, bannedPhrases []string) *string
}

func WithPlanner(planner Planner) PerformerOption {
	return func(p *Performer) { p.planner = planner }
}

// WithTheme sets the initial performance theme.
func WithTheme(theme string) PerformerOption {
	return func(p *Performer) { p.theme = theme }
}

// WithBannedPhrases sets the phrases the planner must keep out of planned
// lines.
func WithBannedPhrases(phrases ...string) PerformerOption {
	return func(p *Performer) { p.bannedPhrases = phrases }
}

// WithCollectionDeadline bounds how long one turn waits for the response
// stream.
func WithCollectionDeadline(deadline time.Duration) PerformerOption {
	return func(p *Performer) { p.collectionDeadline = deadline }
}

// WithOpener overrides the cold-open line used when no crowd signal exists
// yet.
func WithOpener(opener string) PerformerOption {
	return func(p *Performer) { p.opener = opener }
}

// WithInstructions overrides the persona instructions sent on session
// configuration.
func WithInstructions(instructions string) PerformerOption {
	return func(p *Performer) { p.instructions = instructions }
}

// WithStalenessWindow bounds how old a reaction sample may be and still
// contribute to fusion.
func WithStalenessWindow(window time.Duration) PerformerOption {
	return func(p *Performer) {
		p.board = reactions.NewBoard(reactions.WithStalenessWindow(window))
	}
}

type TurnOptions struct {
	theme *string
	fused *reactions.FusedReaction
}

type TurnOption func(*TurnOptions)

// WithTurnTheme overrides the performance theme for this turn only.
func WithTurnTheme(theme string) TurnOption {
	return func(o *TurnOptions) { o.theme = &theme }
}

// WithFusedReaction supplies an already-fused reaction, bypassing the board.
func WithFusedReaction(fused reactions.FusedReaction) TurnOption {
	return func(o *TurnOptions) { o.fused = &fused }
}
