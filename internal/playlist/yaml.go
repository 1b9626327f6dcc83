package playlist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes and validates a playlist document.
func ParseYAML(data []byte) (*Playlist, error) {
	var p Playlist
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("playlist: cannot parse YAML: %w", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("playlist: missing id")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile reads and parses a playlist YAML file.
func LoadFile(path string) (*Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("playlist: cannot read %s: %w", path, err)
	}
	return ParseYAML(data)
}
