package mock

import (
	"testing"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
)

// IDGenerator is mock implementation of platform.IDGenerator.
type IDGenerator struct {
	IDFn func() platform.ID
}

// ID generates a new platform.ID from a mock function.
func (g IDGenerator) ID() platform.ID {
	return g.IDFn()
}

// NewIDGenerator is a simple way to create immutable id generator
func NewIDGenerator(s string, t *testing.T) IDGenerator {
	t.Helper()

	return IDGenerator{
		IDFn: func() platform.ID {
			id, err := platform.IDFromString(s)
			if err != nil {
				t.Fatal(err)
			}
			return *id
		},
	}
}

// NewIncrementingIDGenerator returns an id generator that produces sequential
// ids starting at the given one.
func NewIncrementingIDGenerator(start platform.ID) IDGenerator {
	next := start
	return IDGenerator{
		IDFn: func() platform.ID {
			id := next
			next++
			return id
		},
	}
}
