package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the optional project-level `pfn.yaml` file (SPEC_FULL
// section 2.2). Its absence is not an error: callers fall back to
// file-derived defaults.
type Manifest struct {
	Module    string `yaml:"module"`
	OutputDir string `yaml:"output_dir"`
	Target    string `yaml:"target"` // host dialect, e.g. "python3"
}

// LoadManifest reads and parses path. A missing file returns a zero
// Manifest and a nil error; any other I/O or parse failure is returned.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
