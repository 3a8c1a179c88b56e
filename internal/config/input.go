// Package config loads profiles, scenario batches and parameter tables from
// YAML files and validates them before anything downstream runs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ziziou272/taxlens/internal/domain"
)

// Document is the top-level input file: a tax year, a baseline profile and an
// optional batch of alternative scenarios.
type Document struct {
	Year     int               `yaml:"year" json:"year"`
	Profile  domain.TaxProfile `yaml:"profile" json:"profile"`
	Scenario []domain.Scenario `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
}

// InputParser handles parsing of input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a document from a YAML file. JSON files
// parse too since YAML is a superset.
func (ip *InputParser) LoadFromFile(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateDocument(&doc); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return &doc, nil
}

// LoadProfile loads a file containing only a baseline profile.
func (ip *InputParser) LoadProfile(filename string) (*domain.TaxProfile, int, error) {
	doc, err := ip.LoadFromFile(filename)
	if err != nil {
		return nil, 0, err
	}
	return &doc.Profile, doc.Year, nil
}

// ValidateDocument validates the loaded document.
func (ip *InputParser) ValidateDocument(doc *Document) error {
	if doc.Year == 0 {
		return fmt.Errorf("year is required")
	}
	if _, err := domain.ForYear(doc.Year); err != nil {
		return err
	}
	if err := doc.Profile.Validate(); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}

	seen := make(map[string]bool, len(doc.Scenario))
	for i, sc := range doc.Scenario {
		if sc.Name == "" {
			return fmt.Errorf("scenario %d: name is required", i)
		}
		if seen[sc.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, sc.Name)
		}
		seen[sc.Name] = true
		if err := sc.Profile.Validate(); err != nil {
			return fmt.Errorf("scenario %q validation failed: %w", sc.Name, err)
		}
	}
	return nil
}
