package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled returns the schema compiled by jsonschema, compiling it on first
// use. The result is kept on the Schema itself, so two schemas that share a
// Name never see each other's rules.
func (s *Schema) compiled() (*jsonschema.Schema, error) {
	s.compileOnce.Do(func() {
		s.compiledSchema, s.compileErr = compileDefinition(s.Name, s.Definition)
	})
	return s.compiledSchema, s.compileErr
}

func compileDefinition(name string, def map[string]any) (*jsonschema.Schema, error) {
	// jsonschema wants plain decoded JSON, not Go maps with typed slices.
	b, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := "mem://lessonhub/" + name + ".json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}
	return compiled, nil
}

// validateResponse checks raw against schema. A nil schema accepts
// anything. Failures are *ErrInvalidResponse so the retry layer gives the
// model one more try.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := schema.compiled()
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := compiled.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema %q: %w", schema.Name, err)}
	}
	return nil
}
