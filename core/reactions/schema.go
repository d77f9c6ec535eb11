package reactions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// sampleSchema is the contract for inbound reaction payloads. Analyzers live
// outside this process, so their JSON is validated before it can touch any
// state.
const sampleSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["modality", "verdict"],
  "additionalProperties": false,
  "properties": {
    "modality": {"type": "string", "enum": ["audio", "visual"]},
    "verdict": {"type": "string", "minLength": 1},
    "rationale": {"type": "string", "maxLength": 200},
    "confidence": {"type": "number", "minimum": 0, "maximum": 1},
    "timestamp": {"type": "string", "format": "date-time"}
  }
}`

var compiledSampleSchema = mustCompileSampleSchema()

func mustCompileSampleSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("sample.schema.json", strings.NewReader(sampleSchema)); err != nil {
		panic(fmt.Sprintf("failed to add reaction sample schema resource: %v", err))
	}
	schema, err := compiler.Compile("sample.schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile reaction sample schema: %v", err))
	}
	return schema
}

type sampleWire struct {
	Modality   string   `json:"modality"`
	Verdict    string   `json:"verdict"`
	Rationale  string   `json:"rationale,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Timestamp  string   `json:"timestamp,omitempty"`
}

// ParseSample validates raw analyzer JSON against the sample contract and
// builds a Sample from it. Both the schema and the typed validator must
// accept the payload.
func ParseSample(raw []byte) (Sample, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Sample{}, fmt.Errorf("failed to decode reaction sample: %w", err)
	}
	if err := compiledSampleSchema.Validate(payload); err != nil {
		return Sample{}, fmt.Errorf("reaction sample rejected by schema: %w", err)
	}

	var wire sampleWire
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return Sample{}, fmt.Errorf("failed to decode reaction sample: %w", err)
	}

	opts := []SampleOption{}
	if wire.Confidence != nil {
		opts = append(opts, WithConfidence(*wire.Confidence))
	}
	if wire.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, wire.Timestamp)
		if err != nil {
			return Sample{}, fmt.Errorf("failed to parse reaction sample timestamp: %w", err)
		}
		opts = append(opts, WithTimestamp(ts))
	}

	sample := NewSample(Modality(wire.Modality), Verdict(wire.Verdict), wire.Rationale, opts...)
	if err := sample.Validate(); err != nil {
		return Sample{}, err
	}
	return sample, nil
}
