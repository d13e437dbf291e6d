package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a table from a YAML file. Sections left out of the file
// keep their built-in values. Duplicate pairs are dropped, keeping the first
// definition; the dropped keys are returned so the caller can log them.
func LoadFile(path string) (*Table, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML table.
func Parse(data []byte) (*Table, []string, error) {
	var override Table
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, nil, fmt.Errorf("parse catalog: %w", err)
	}

	t := Default()
	if len(override.Offers) > 0 {
		t.Offers = override.Offers
	}
	if len(override.Requests) > 0 {
		t.Requests = override.Requests
	}
	if len(override.OfferPairs) > 0 {
		t.OfferPairs = override.OfferPairs
	}
	if len(override.StatusPairs) > 0 {
		t.StatusPairs = override.StatusPairs
	}

	dropped := t.Dedupe()
	if err := t.Validate(); err != nil {
		return nil, nil, err
	}
	return t, dropped, nil
}
