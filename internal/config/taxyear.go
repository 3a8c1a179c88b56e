package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ziziou272/taxlens/internal/domain"
)

// ResolveTaxYear returns the parameter tables for a year: the override file
// when given, the built-in tables otherwise. Override files carry the whole
// table set, so a partial file fails validation rather than silently mixing
// with built-ins.
func ResolveTaxYear(year int, overrideFile string) (*domain.TaxYear, error) {
	if overrideFile == "" {
		return domain.ForYear(year)
	}
	ty, err := LoadTaxYearFile(overrideFile)
	if err != nil {
		return nil, err
	}
	if year != 0 && ty.Year != year {
		return nil, fmt.Errorf("parameter file is for year %d, not %d", ty.Year, year)
	}
	return ty, nil
}

// LoadTaxYearFile loads a full parameter table set from a YAML file.
func LoadTaxYearFile(filename string) (*domain.TaxYear, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var ty domain.TaxYear
	if err := yaml.Unmarshal(data, &ty); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ty.Validate(); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}
	return &ty, nil
}
