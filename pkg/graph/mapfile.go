package graph

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wayfindr/indoornav/pkg/registry"
)

// MapFile is the on-disk building map: location records plus the
// adjacency declarations between them. The file is authored externally
// and consumed, not owned, by this engine.
type MapFile struct {
	Building    string              `yaml:"building,omitempty"`
	Locations   []registry.Location `yaml:"locations"`
	Adjacencies []Adjacency         `yaml:"adjacencies"`
}

// ReadMapFile loads and parses a building map from path.
func ReadMapFile(path string) (*MapFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}
	return ParseMapFile(raw)
}

// ParseMapFile parses building map YAML.
func ParseMapFile(raw []byte) (*MapFile, error) {
	var m MapFile
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse map file: %w", err)
	}
	if len(m.Locations) == 0 {
		return nil, fmt.Errorf("parse map file: no locations")
	}
	return &m, nil
}

// Registry builds a location registry from the map's records.
func (m *MapFile) Registry() (*registry.Registry, error) {
	return registry.New(m.Locations)
}
