// Package llms holds the option types shared by one-shot text generation
// providers.
package llms

type GenerateOptions struct {
	Instructions string
	Temperature  *float64
	MaxTokens    *int
}

type GenerateOption func(*GenerateOptions)

// WithSystemPrompt sets the system instructions for the call.
func WithSystemPrompt(instructions string) GenerateOption {
	return func(o *GenerateOptions) { o.Instructions = instructions }
}

func WithTemperature(temperature float64) GenerateOption {
	return func(o *GenerateOptions) { o.Temperature = &temperature }
}

func WithMaxTokens(maxTokens int) GenerateOption {
	return func(o *GenerateOptions) { o.MaxTokens = &maxTokens }
}
