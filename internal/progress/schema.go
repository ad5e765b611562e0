package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Shapes of the three persisted blobs. A blob that fails its schema is
// treated as absent.
var (
	progressSchema = map[string]any{
		"type": "object",
		"additionalProperties": map[string]any{
			"type":     "object",
			"required": []any{"lessonId", "status"},
			"properties": map[string]any{
				"lessonId":    map[string]any{"type": "string", "minLength": 1},
				"status":      map[string]any{"enum": []any{"not_started", "in_progress", "completed"}},
				"completedAt": map[string]any{"type": "string"},
			},
		},
	}

	streakSchema = map[string]any{
		"type":     "object",
		"required": []any{"currentStreak", "lastActivityDate"},
		"properties": map[string]any{
			"currentStreak":    map[string]any{"type": "integer", "minimum": 0},
			"lastActivityDate": map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
		},
	}

	settingsSchema = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"email": map[string]any{"type": "string"},
			"team":  map[string]any{"type": "string"},
			"role":  map[string]any{"enum": []any{"admin", "member"}},
			"notifications": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"newLessons":   map[string]any{"type": "boolean"},
					"toolUpdates":  map[string]any{"type": "boolean"},
					"teamActivity": map[string]any{"type": "boolean"},
					"weeklyDigest": map[string]any{"type": "boolean"},
				},
			},
		},
	}
)

var compileSchemas = sync.OnceValues(func() (map[string]*jsonschema.Schema, error) {
	defs := map[string]map[string]any{
		ProgressKey: progressSchema,
		StreakKey:   streakSchema,
		SettingsKey: settingsSchema,
	}
	c := jsonschema.NewCompiler()
	out := make(map[string]*jsonschema.Schema, len(defs))
	for key, def := range defs {
		b, err := json.Marshal(def)
		if err != nil {
			return nil, fmt.Errorf("marshal %s schema: %w", key, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("parse %s schema: %w", key, err)
		}
		url := fmt.Sprintf("schema://%s.json", strings.ReplaceAll(key, ":", "-"))
		if err := c.AddResource(url, doc); err != nil {
			return nil, fmt.Errorf("add resource %s: %w", key, err)
		}
		compiled, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", key, err)
		}
		out[key] = compiled
	}
	return out, nil
})

// decodeBlob checks raw against the schema for key and decodes it into v.
func decodeBlob(key, raw string, v any) error {
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schemas, err := compileSchemas()
	if err != nil {
		return err
	}
	if s, ok := schemas[key]; ok {
		if err := s.Validate(inst); err != nil {
			return fmt.Errorf("schema validation failed: %w", err)
		}
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
