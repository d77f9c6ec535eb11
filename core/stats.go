package standup

import (
	"slices"

	"github.com/crimeacs/kaufmannGPT/core/reactions"
)

// PerformanceStats summarizes the set so far.
type PerformanceStats struct {
	TotalTurns     int
	Themes         []string
	EngagementRate float64
	Engagement     string
}

// positiveVibes are the crowd moods that count toward engagement.
var positiveVibes = []reactions.Vibe{reactions.VibeLively, reactions.VibeWarm}

// Stats computes engagement over the performance history. Engagement is the
// share of turns whose crowd read was positive: above 0.6 is high, above 0.3
// medium, otherwise low.
func (p *Performer) Stats() PerformanceStats {
	turns := p.history.Turns()
	if len(turns) == 0 {
		return PerformanceStats{Engagement: "unknown"}
	}

	themes := []string{}
	engaged := 0
	for _, turn := range turns {
		if turn.Theme != "" && !slices.Contains(themes, turn.Theme) {
			themes = append(themes, turn.Theme)
		}
		if turn.AudienceContext != nil && slices.Contains(positiveVibes, turn.AudienceContext.Vibe) {
			engaged++
		}
	}

	rate := float64(engaged) / float64(len(turns))
	engagement := "low"
	if rate > 0.6 {
		engagement = "high"
	} else if rate > 0.3 {
		engagement = "medium"
	}

	return PerformanceStats{
		TotalTurns:     len(turns),
		Themes:         themes,
		EngagementRate: rate,
		Engagement:     engagement,
	}
}
