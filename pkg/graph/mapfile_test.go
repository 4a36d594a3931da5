package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mapYAML = `
building: FICT
locations:
  - {id: A1, floor: 0, x: 0, y: 0, type: entrance, description: Main Entrance}
  - {id: B1, floor: 0, x: 10, y: 0, type: corridor}
  - {id: D1, floor: 1, x: 10, y: 0, type: corridor}
adjacencies:
  - {from: A1, to: B1}
  - {from: B1, to: D1, kind: elevator, time_penalty: 15, reverse_time_penalty: 25}
`

func TestParseMapFile(t *testing.T) {
	m, err := ParseMapFile([]byte(mapYAML))
	require.NoError(t, err)
	assert.Equal(t, "FICT", m.Building)
	require.Len(t, m.Locations, 3)
	require.Len(t, m.Adjacencies, 2)

	lift := m.Adjacencies[1]
	assert.Equal(t, KindElevator, lift.Kind)
	assert.InDelta(t, 15.0, lift.TimePenalty, 1e-9)
	require.NotNil(t, lift.ReverseTimePenalty)
	assert.InDelta(t, 25.0, *lift.ReverseTimePenalty, 1e-9)

	reg, err := m.Registry()
	require.NoError(t, err)
	_, err = Build(reg, m.Adjacencies, DefaultBuildOptions())
	require.NoError(t, err)
}

func TestParseMapFileRejectsGarbage(t *testing.T) {
	_, err := ParseMapFile([]byte("locations: 42"))
	require.Error(t, err)

	_, err = ParseMapFile([]byte("building: empty"))
	require.Error(t, err)
}
