package graph

import (
	"errors"
	"fmt"
)

// ErrInvalidTopology marks malformed connectivity data. It is fatal at
// build time: a broken graph must never enter service.
var ErrInvalidTopology = errors.New("invalid topology")

// TopologyError describes which adjacency record is broken and why.
type TopologyError struct {
	From   string
	To     string
	Reason string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("invalid topology: %s -> %s: %s", e.From, e.To, e.Reason)
}

func (e *TopologyError) Unwrap() error {
	return ErrInvalidTopology
}
