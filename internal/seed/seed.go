// Package seed reads timeline seed files. A seed file is YAML or JSON with
// optional config, events and eras sections whose keys are column names;
// backups written by the server are valid seed files.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a parsed seed file.
type File struct {
	Config map[string]any   `yaml:"config" json:"config,omitempty"`
	Events []map[string]any `yaml:"events" json:"events"`
	Eras   []map[string]any `yaml:"eras" json:"eras"`
}

// Empty reports whether the file carries nothing to apply.
func (f *File) Empty() bool {
	return len(f.Config) == 0 && len(f.Events) == 0 && len(f.Eras) == 0
}

// Parse decodes seed data. JSON is accepted since it is valid YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	for i, ev := range f.Events {
		if ev == nil {
			return nil, fmt.Errorf("parse seed: events[%d] is empty", i)
		}
	}
	for i, era := range f.Eras {
		if era == nil {
			return nil, fmt.Errorf("parse seed: eras[%d] is empty", i)
		}
	}
	return &f, nil
}

// Load reads and parses the seed file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}
