package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromFile loads a rule file, auto-detecting the format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read rule file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return RuleSet{}, fmt.Errorf("unsupported rule file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a RuleSet.
func FromYAML(data []byte) (RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, fmt.Errorf("parse yaml: %w", err)
	}
	return rs, nil
}

// FromJSON parses JSON data into a RuleSet.
func FromJSON(data []byte) (RuleSet, error) {
	var rs RuleSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, fmt.Errorf("parse json: %w", err)
	}
	return rs, nil
}
