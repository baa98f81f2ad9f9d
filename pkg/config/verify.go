package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// It checks required properties and property types, nested definitions are followed by $ref.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	defs, _ := schema["$defs"].(map[string]any)
	if err := verifyNode(schema, configMap, defs, ""); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// verifyNode checks a single value against its schema node
func verifyNode(node map[string]any, value any, defs map[string]any, path string) error {
	if ref, ok := node["$ref"].(string); ok {
		name := strings.TrimPrefix(ref, "#/$defs/")
		def, ok := defs[name].(map[string]any)
		if !ok {
			return fmt.Errorf("%s: unknown schema reference %s", displayPath(path), ref)
		}
		return verifyNode(def, value, defs, path)
	}

	if typ, ok := node["type"].(string); ok && !typeMatches(typ, value) {
		return fmt.Errorf("%s: expected %s, got %T", displayPath(path), typ, value)
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	if required, ok := node["required"].([]any); ok {
		for _, r := range required {
			name, _ := r.(string)
			if _, found := obj[name]; !found {
				return fmt.Errorf("%s is required", joinPath(path, name))
			}
		}
	}
	props, _ := node["properties"].(map[string]any)
	for name, p := range props {
		pnode, ok := p.(map[string]any)
		if !ok {
			continue
		}
		v, found := obj[name]
		if !found {
			continue
		}
		if err := verifyNode(pnode, v, defs, joinPath(path, name)); err != nil {
			return err
		}
	}
	return nil
}

// typeMatches checks JSON value type against schema type, null passes for arrays and objects
func typeMatches(typ string, value any) bool {
	switch typ {
	case "string":
		_, ok := value.(string)
		return ok
	case "integer":
		f, ok := value.(float64)
		return ok && f == float64(int64(f))
	case "number":
		_, ok := value.(float64)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok || value == nil
	case "object":
		_, ok := value.(map[string]any)
		return ok || value == nil
	}
	return true
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func displayPath(path string) string {
	if path == "" {
		return "config"
	}
	return path
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
