package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario evaluates a model's labels, formulas and properties in a list of
// concrete states and checks the results.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Model is the model document (YAML or CUE), relative to the scenario
	// file.
	Model string `yaml:"model"`

	// Properties is an optional properties document over Model.
	Properties string `yaml:"properties,omitempty"`

	// Constants gives values to constants the documents leave undefined.
	Constants map[string]any `yaml:"constants,omitempty"`

	// States are evaluated in order, each in a fresh evaluation context.
	States []StateStep `yaml:"states"`
}

// StateStep is one concrete state and the checks made in it.
type StateStep struct {
	// Vars assigns state variables by name. Unassigned variables have no
	// value; referring to one fails with UNDEFINED.
	Vars map[string]any `yaml:"vars"`

	Expect []Check `yaml:"expect"`
}

// Check evaluates exactly one of Label, Formula or Property and compares
// the result against Value, or the error code against Error.
type Check struct {
	Label    string `yaml:"label,omitempty"`
	Formula  string `yaml:"formula,omitempty"`
	Property string `yaml:"property,omitempty"`

	// Value is the expected result. Numbers compare by magnitude.
	Value any `yaml:"value,omitempty"`

	// Error is the expected error code (e.g. NOT_EVALUABLE).
	Error string `yaml:"error,omitempty"`
}

// Check target kinds.
const (
	TargetLabel    = "label"
	TargetFormula  = "formula"
	TargetProperty = "property"
)

// Target returns the checked item.
func (c *Check) Target() Target {
	switch {
	case c.Label != "":
		return Target{Kind: TargetLabel, Name: c.Label}
	case c.Formula != "":
		return Target{Kind: TargetFormula, Name: c.Formula}
	default:
		return Target{Kind: TargetProperty, Name: c.Property}
	}
}

// scenarioKeys are top-level keys only a scenario document has; model and
// properties documents never use them.
var scenarioKeys = []string{"name", "description", "model", "states"}

// IsScenario reports whether data looks like a scenario rather than a model
// or properties document stored beside it. Data that is not a YAML mapping
// counts as a scenario, so loading it reports the problem.
func IsScenario(data []byte) bool {
	var top map[string]any
	if err := yaml.Unmarshal(data, &top); err != nil || top == nil {
		return true
	}
	for _, k := range scenarioKeys {
		if _, ok := top[k]; ok {
			return true
		}
	}
	return false
}

// LoadScenario reads and parses a scenario YAML file. Document paths are
// resolved relative to the scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data, filepath.Dir(path))
}

// ParseScenario parses scenario YAML, resolving relative document paths
// against baseDir.
func ParseScenario(data []byte, baseDir string) (*Scenario, error) {
	// Unknown fields are typos; reject them.
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	scenario.Model = resolve(baseDir, scenario.Model)
	scenario.Properties = resolve(baseDir, scenario.Properties)

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Model == "" {
		return fmt.Errorf("model is required")
	}
	if len(s.States) == 0 {
		return fmt.Errorf("states list is required and must be non-empty")
	}

	for _, path := range []string{s.Model, s.Properties} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("document not found: %s", path)
		}
	}

	for name, v := range s.Constants {
		if v == nil {
			return fmt.Errorf("constants.%s: value is required", name)
		}
	}

	for i, step := range s.States {
		if len(step.Expect) == 0 {
			return fmt.Errorf("states[%d]: expect list is required and must be non-empty", i)
		}
		for j := range step.Expect {
			if err := validateCheck(&step.Expect[j]); err != nil {
				return fmt.Errorf("states[%d].expect[%d]: %w", i, j, err)
			}
		}
		if step.hasProperty() && s.Properties == "" {
			return fmt.Errorf("states[%d]: property checks need a properties document", i)
		}
	}
	return nil
}

func validateCheck(c *Check) error {
	targets := 0
	for _, name := range []string{c.Label, c.Formula, c.Property} {
		if name != "" {
			targets++
		}
	}
	if targets != 1 {
		return fmt.Errorf("exactly one of label, formula or property is required")
	}
	if (c.Value == nil) == (c.Error == "") {
		return fmt.Errorf("exactly one of value or error is required")
	}
	return nil
}

func (s *StateStep) hasProperty() bool {
	for _, c := range s.Expect {
		if c.Property != "" {
			return true
		}
	}
	return false
}
