// Package loader reads project configurations from disk or request bodies.
// Hand-edited files are accepted in strict JSON, repairable JSON or Hjson.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"project_feasibility/pkg/models"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ErrUnparseable is returned when no parsing strategy accepts the input.
var ErrUnparseable = errors.New("project input could not be parsed")

// Format records which strategy accepted the input.
type Format string

const (
	FormatJSON     Format = "json"
	FormatRepaired Format = "repaired-json"
	FormatHJSON    Format = "hjson"
)

// RepairJSON fixes common hand-editing errors: missing quotes around keys,
// single quotes, trailing commas, comments, unclosed brackets and
// surrounding markdown code fences.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// ParseHJSON parses Human-friendly JSON (Hjson) and returns standard JSON.
func ParseHJSON(data string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(data), &result); err != nil {
		return "", fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}
	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}
	return string(out), nil
}

// SmartParse tries multiple parsing strategies.
// Order of attempts:
// 1. Standard JSON
// 2. JSON repair
// 3. Hjson (most lenient)
func SmartParse(input string, target interface{}) (Format, error) {
	// Try 1: Standard JSON
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return FormatJSON, nil
	}

	// Try 2: Hjson before repair; repair would drop Hjson's unquoted strings
	if strings.Contains(input, "#") || !strings.Contains(input, "\"") {
		if converted, err := ParseHJSON(input); err == nil {
			if err := json.Unmarshal([]byte(converted), target); err == nil {
				return FormatHJSON, nil
			}
		}
	}

	// Try 3: JSON repair
	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return FormatRepaired, nil
		}
	}

	// Try 4: Hjson
	if converted, err := ParseHJSON(input); err == nil {
		if err := json.Unmarshal([]byte(converted), target); err == nil {
			return FormatHJSON, nil
		}
	}

	return "", ErrUnparseable
}

// Parse decodes a project configuration from text.
func Parse(input string) (models.ProjectConfig, Format, error) {
	var cfg models.ProjectConfig
	if strings.TrimSpace(input) == "" {
		return cfg, "", fmt.Errorf("empty project input: %w", ErrUnparseable)
	}
	format, err := SmartParse(input, &cfg)
	if err != nil {
		return models.ProjectConfig{}, "", err
	}
	return cfg, format, nil
}

// Read decodes a project configuration from r.
func Read(r io.Reader) (models.ProjectConfig, Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.ProjectConfig{}, "", fmt.Errorf("failed to read project input: %w", err)
	}
	return Parse(string(data))
}

// LoadFile decodes a project configuration file.
func LoadFile(path string) (models.ProjectConfig, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ProjectConfig{}, "", fmt.Errorf("failed to read project file %s: %w", path, err)
	}
	cfg, format, err := Parse(string(data))
	if err != nil {
		return cfg, format, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}
	return cfg, format, nil
}
