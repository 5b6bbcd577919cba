package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	jsonschemav5 "github.com/santhosh-tekuri/jsonschema/v5"

	"audio-briefing/src/core/domain"
	"audio-briefing/src/workflows"
)

// ConvertStructToJSONSchema converts a Go struct to JSON Schema format
func ConvertStructToJSONSchema(schemaStruct interface{}) ([]byte, error) {
	if schemaStruct == nil {
		return nil, fmt.Errorf("schema struct is nil")
	}

	reflector := jsonschema.Reflector{}
	reflector.RequiredFromJSONSchemaTags = true // Use jsonschema tags for required fields
	schema := reflector.Reflect(schemaStruct)

	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON schema: %w", err)
	}
	return schemaBytes, nil
}

type keySchema struct {
	key    string
	schema *jsonschema.Schema
}

// fieldSchemas returns the answer keys of a field with the schema of their value.
// Multi-select fields expose one boolean key per option.
func fieldSchemas(f domain.Field) []keySchema {
	type entry = keySchema
	switch f.Kind {
	case domain.KindSingle:
		enum := make([]any, 0, len(f.Options))
		for _, o := range f.Options {
			enum = append(enum, o)
		}
		return []entry{{domain.FieldKey(f.ID).String(), &jsonschema.Schema{Type: "string", Enum: enum}}}
	case domain.KindMulti:
		out := make([]entry, 0, len(f.Options))
		for _, o := range f.Options {
			out = append(out, entry{domain.OptionKey(f.ID, o).String(), &jsonschema.Schema{Type: "boolean"}})
		}
		return out
	case domain.KindNumber:
		return []entry{{domain.FieldKey(f.ID).String(), &jsonschema.Schema{Type: "number"}}}
	default:
		return []entry{{domain.FieldKey(f.ID).String(), &jsonschema.Schema{Type: "string"}}}
	}
}

func objectSchema(fields []domain.Field) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	for _, f := range fields {
		for _, e := range fieldSchemas(f) {
			props.Set(e.key, e.schema)
		}
	}
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

// StepSchema builds the JSON Schema of the answers one step asks for
func StepSchema(def workflows.Definition, step domain.StepID) *jsonschema.Schema {
	return objectSchema(def.Steps[step].Fields)
}

// AnswersSchema builds the JSON Schema of an answer update body covering every field
func AnswersSchema(def workflows.Definition) *jsonschema.Schema {
	return objectSchema(def.Fields())
}

// AnswerValidator checks the shape of answer update bodies.
// It never decides whether a step may advance; that is the gate's job.
type AnswerValidator struct {
	schema *jsonschemav5.Schema
}

// NewAnswerValidator compiles the answers schema of a definition
func NewAnswerValidator(def workflows.Definition) (*AnswerValidator, error) {
	schemaBytes, err := json.Marshal(AnswersSchema(def))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers schema: %w", err)
	}

	compiler := jsonschemav5.NewCompiler()
	schemaID := "schema://briefing/answers"
	if err := compiler.AddResource(schemaID, bytes.NewReader(schemaBytes)); err != nil {
		return nil, fmt.Errorf("failed to add answers schema: %w", err)
	}
	schema, err := compiler.Compile(schemaID)
	if err != nil {
		return nil, fmt.Errorf("failed to compile answers schema: %w", err)
	}
	return &AnswerValidator{schema: schema}, nil
}

// Validate decodes a raw JSON body and validates it against the answers schema
func (v *AnswerValidator) Validate(raw []byte) (map[string]any, error) {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("invalid answers body: %w", err)
	}
	if body == nil {
		return nil, fmt.Errorf("invalid answers body: expected an object")
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid answers body: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("answers validation failed: %w", err)
	}
	return body, nil
}
