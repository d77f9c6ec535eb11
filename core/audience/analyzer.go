// Package audience turns free-form crowd observations into reaction samples
// via a structured-output LLM call.
package audience

import (
	"context"
	"fmt"

	"github.com/crimeacs/kaufmannGPT/core/llms"
	"github.com/crimeacs/kaufmannGPT/core/reactions"
)

const audioAnalyzerSystemPrompt = "You are an audience reaction analyzer listening to a comedy room. " +
	"Classify the described sound as one of: hit, mixed, miss, uncertain."

const visualAnalyzerSystemPrompt = "You are an audience reaction analyzer watching a comedy room. " +
	"Classify the described faces as one of: laughing, enjoying, scattered, neutral, uncertain."

// LLMWithStructuredPrompt is the structured-output backend for analysis.
type LLMWithStructuredPrompt interface {
	PromptWithStructure(ctx context.Context, prompt string, output any, opts ...llms.GenerateOption) error
}

type audioAnalysis struct {
	Verdict     string  `json:"verdict" jsonschema:"title=Verdict,description=Crowd sound classification,enum=hit,enum=mixed,enum=miss,enum=uncertain"`
	Confidence  float64 `json:"confidence" jsonschema:"title=Confidence,description=Confidence in the verdict between 0 and 1"`
	Description string  `json:"description" jsonschema:"title=Description,description=One short sentence describing the sound"`
}

type visualAnalysis struct {
	Verdict     string  `json:"verdict" jsonschema:"title=Verdict,description=Crowd face classification,enum=laughing,enum=enjoying,enum=scattered,enum=neutral,enum=uncertain"`
	Confidence  float64 `json:"confidence" jsonschema:"title=Confidence,description=Confidence in the verdict between 0 and 1"`
	Description string  `json:"description" jsonschema:"title=Description,description=One short sentence describing the faces"`
}

type Analyzer struct {
	llm LLMWithStructuredPrompt
}

func NewAnalyzer(llm LLMWithStructuredPrompt) *Analyzer {
	return &Analyzer{llm: llm}
}

// AnalyzeAudio classifies a description of the room's sound into a sample.
func (a *Analyzer) AnalyzeAudio(ctx context.Context, observation string) (reactions.Sample, error) {
	analysis := audioAnalysis{}
	if err := a.llm.PromptWithStructure(ctx, observation, &analysis,
		llms.WithSystemPrompt(audioAnalyzerSystemPrompt),
	); err != nil {
		return reactions.Sample{}, fmt.Errorf("failed to analyze crowd audio: %w", err)
	}
	return a.toSample(reactions.ModalityAudio, analysis.Verdict, analysis.Description, analysis.Confidence)
}

// AnalyzeVisual classifies a description of the room's faces into a sample.
func (a *Analyzer) AnalyzeVisual(ctx context.Context, observation string) (reactions.Sample, error) {
	analysis := visualAnalysis{}
	if err := a.llm.PromptWithStructure(ctx, observation, &analysis,
		llms.WithSystemPrompt(visualAnalyzerSystemPrompt),
	); err != nil {
		return reactions.Sample{}, fmt.Errorf("failed to analyze crowd visuals: %w", err)
	}
	return a.toSample(reactions.ModalityVisual, analysis.Verdict, analysis.Description, analysis.Confidence)
}

func (a *Analyzer) toSample(modality reactions.Modality, verdict, description string, confidence float64) (reactions.Sample, error) {
	sample := reactions.NewSample(modality, reactions.Verdict(verdict), description,
		reactions.WithConfidence(confidence),
	)
	if err := sample.Validate(); err != nil {
		return reactions.Sample{}, err
	}
	return sample, nil
}
