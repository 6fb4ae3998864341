package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var defaultScenarios []byte

type scenario struct {
	Name           string  `yaml:"name"`            // friendly name, should be unique
	Width          int     `yaml:"width"`           // stores per layer
	Layers         int     `yaml:"layers"`          // including the source layer
	StaticFraction float64 `yaml:"static_fraction"` // fraction of nodes summing every source
	Sources        int     `yaml:"sources"`         // sources per derived node
	ReadFraction   float64 `yaml:"read_fraction"`   // fraction of the last layer that is subscribed
	Iterations     int64   `yaml:"iterations"`
}

type scenarioFile struct {
	Scenarios []scenario `yaml:"scenarios"`
}

func (s scenario) validate() error {
	switch {
	case s.Name == "":
		return fmt.Errorf("scenario without a name")
	case s.Width < 1:
		return fmt.Errorf("%s: width must be positive", s.Name)
	case s.Layers < 2:
		return fmt.Errorf("%s: need at least 2 layers", s.Name)
	case s.Sources < 1 || s.Sources > 64:
		return fmt.Errorf("%s: sources must be within 1..64, got %d", s.Name, s.Sources)
	case s.StaticFraction < 0 || s.StaticFraction > 1:
		return fmt.Errorf("%s: static_fraction must be within 0..1", s.Name)
	case s.ReadFraction < 0 || s.ReadFraction > 1:
		return fmt.Errorf("%s: read_fraction must be within 0..1", s.Name)
	case s.Iterations < 1:
		return fmt.Errorf("%s: iterations must be positive", s.Name)
	}
	return nil
}

// loadScenarios reads path, or the embedded defaults when path is empty.
func loadScenarios(path string) ([]scenario, error) {
	raw := defaultScenarios
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	var file scenarioFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing scenarios: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios defined")
	}
	for _, s := range file.Scenarios {
		if err := s.validate(); err != nil {
			return nil, err
		}
	}
	return file.Scenarios, nil
}
