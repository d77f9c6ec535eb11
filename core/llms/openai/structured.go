package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/otel/attribute"

	"github.com/crimeacs/kaufmannGPT/core/llms"
)

// PromptWithStructure runs one chat completion constrained to the JSON schema
// reflected from output and unmarshals the result into it. Output must be a
// pointer to a struct with jsonschema tags.
func (c *Client) PromptWithStructure(ctx context.Context, prompt string, output any, opts ...llms.GenerateOption) error {
	ctx, span := tracer.Start(ctx, "prompt llm structured")
	defer span.End()

	options := llms.GenerateOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	reflector := jsonschema.Reflector{DoNotReference: true}
	var (
		schema         *jsonschema.Schema
		outputTypeName string
	)
	if reflect.TypeOf(output).Kind() == reflect.Ptr {
		schema = reflector.ReflectFromType(reflect.TypeOf(output).Elem())
		outputTypeName = reflect.TypeOf(output).Elem().Name()
	} else {
		schema = reflector.Reflect(output)
		outputTypeName = reflect.TypeOf(output).Name()
	}

	reqBody := requestBody{
		Model:       c.model,
		Messages:    toMessages(options.Instructions, prompt),
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
		ResponseFormat: &chatResponseFormat{
			Type: "json_schema",
			JSONSchema: &jsonSchema{
				Name:   outputTypeName,
				Schema: schema,
				Strict: true,
			},
		},
	}

	span.SetAttributes(attribute.String("request.model", c.model))
	schemaString, _ := schema.MarshalJSON()
	span.SetAttributes(attribute.String("request.schema", string(schemaString)))

	content, err := c.complete(ctx, reqBody)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error", err.Error()))
		return err
	}

	// Some models fence the JSON in markdown despite the response format.
	split := strings.Split(content, "```")
	if len(split) > 1 {
		content = split[1]
	}
	if err := json.Unmarshal([]byte(content), output); err != nil {
		err = fmt.Errorf("error unmarshalling response: %w", err)
		span.RecordError(err)
		span.SetAttributes(attribute.String("error", err.Error()))
		return err
	}
	return nil
}
