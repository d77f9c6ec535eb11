// Package planner drafts one sanitized line of dialogue ahead of synthesis.
// Planning is best-effort: every failure degrades to no plan and the duplex
// session's own generation carries the turn.
package planner

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/crimeacs/kaufmannGPT/core/escalation"
	"github.com/crimeacs/kaufmannGPT/core/llms"
	"github.com/crimeacs/kaufmannGPT/core/reactions"
)

// ErrContentPolicyViolation signals that the oracle produced a banned phrase
// twice in a row.
var ErrContentPolicyViolation = errors.New("planned text violates content policy")

// TextOracle is the one-shot generation backend.
type TextOracle interface {
	GenerateText(ctx context.Context, prompt string, opts ...llms.GenerateOption) (string, error)
}

const systemPrompt = "You are a stand-up comedian mid-set. " +
	"Output plain text only: at most two sentences, no lists, no emojis, no stage directions. " +
	"Put the punch-word last. Never describe or narrate the audience's reaction."

var tierInstructions = map[escalation.Tier]string{
	escalation.TierBaseline:           "The crowd is with you. Lean on self-irony and compress the bit; keep the energy.",
	escalation.TierSwitchEngine:       "The last line missed. Switch the rhetorical device or topic outright; do not continue the previous premise.",
	escalation.TierCallbackOrEscalate: "Two misses in a row. Reach back for a callback to an earlier hit, or sharpen the current bit considerably.",
	escalation.TierRoast:              "The room has gone cold three times. Deliver a light roast of the venue or the situation itself, then pivot to fresh material.",
}

type Planner struct {
	oracle TextOracle
}

func New(oracle TextOracle) *Planner {
	return &Planner{oracle: oracle}
}

// Plan asks the oracle for a candidate line shaped by the escalation tier,
// sanitizes it, and rejects it (with one strengthened retry) when it contains
// a banned phrase. Returns nil when no usable plan could be produced; the
// caller proceeds without one.
func (p *Planner) Plan(
	ctx context.Context,
	reaction reactions.FusedReaction,
	tier escalation.Tier,
	theme string,
	bannedPhrases []string,
) *string {
	ctx, span := tracer.Start(ctx, "plan line")
	defer span.End()
	span.SetAttributes(attribute.String("escalation.tier", string(tier)))

	prompt := buildPrompt(reaction, tier, theme)

	result, err := retryOnce(ctx, prompt,
		func(prompt, reason string) string {
			return prompt + fmt.Sprintf(" Do not use the phrase %q or anything close to it.", reason)
		},
		func(ctx context.Context, prompt string) (string, error) {
			raw, err := p.oracle.GenerateText(ctx, prompt, llms.WithSystemPrompt(systemPrompt))
			if err != nil {
				return "", err
			}
			return sanitize(raw), nil
		},
		func(result string) string {
			phrase, banned := containsBannedPhrase(result, bannedPhrases)
			if banned {
				return phrase
			}
			return ""
		},
	)
	if err != nil {
		span.RecordError(err)
		logger.WarnContext(ctx, "Planning failed, proceeding without a pre-planned line", "error", err)
		return nil
	}
	if !hasLetters(result) {
		logger.WarnContext(ctx, "Planning produced no speakable text, proceeding without a pre-planned line")
		return nil
	}
	return &result
}

func buildPrompt(reaction reactions.FusedReaction, tier escalation.Tier, theme string) string {
	prompt := "Crowd read: " + reaction.String() + "."
	if theme != "" {
		prompt += " Current theme: " + theme + "."
	}
	if instruction, ok := tierInstructions[tier]; ok {
		prompt += " " + instruction
	}
	return prompt
}
