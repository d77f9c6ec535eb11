package openai

import (
	"go.opentelemetry.io/otel"
)

const scopeName = "github.com/crimeacs/kaufmannGPT/core/llms/openai"

var tracer = otel.Tracer(scopeName)
