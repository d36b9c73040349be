package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Read loads and validates a scenario descriptor from a YAML file.
func Read(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s:\n%w", path, err)
	}

	return &d, nil
}

// Write serializes a descriptor to a YAML file.
func Write(d *Descriptor, path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
