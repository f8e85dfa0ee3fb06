// Package snowflake generates time-ordered unique IDs for control plane
// entities.
package snowflake

import (
	"math/rand"
	"sync"
	"time"

	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/platform"
)

const (
	machineBits  = 10
	sequenceBits = 12

	maxMachine  = 1<<machineBits - 1
	maxSequence = 1<<sequenceBits - 1

	// epoch is 2020-01-01T00:00:00Z in milliseconds.
	epoch = 1577836800000
)

var _ platform.IDGenerator = (*IDGenerator)(nil)

// IDGenerator produces snowflake IDs: 41 bits of millisecond timestamp,
// 10 bits of machine ID and a 12 bit per-millisecond sequence.
type IDGenerator struct {
	mu      sync.Mutex
	machine uint64
	lastMS  uint64
	seq     uint64

	now func() time.Time
}

// IDGeneratorOp is an option for an IDGenerator.
type IDGeneratorOp func(*IDGenerator)

// WithMachineID uses the low 10 bits of machineID to set the machine ID for
// generated IDs.
func WithMachineID(machineID int) IDGeneratorOp {
	return func(g *IDGenerator) {
		g.machine = uint64(machineID & maxMachine)
	}
}

// NewIDGenerator returns a new IDGenerator. Without options the machine ID
// is chosen at random.
func NewIDGenerator(opts ...IDGeneratorOp) *IDGenerator {
	gen := &IDGenerator{
		machine: uint64(rand.Intn(maxMachine + 1)),
		now:     time.Now,
	}
	for _, f := range opts {
		f(gen)
	}
	return gen
}

// ID returns the next unique ID.
func (g *IDGenerator) ID() platform.ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := uint64(g.now().UnixMilli()) - epoch
	if ms == g.lastMS {
		g.seq = (g.seq + 1) & maxSequence
		if g.seq == 0 {
			// sequence exhausted for this millisecond, spin to the next one
			for ms <= g.lastMS {
				ms = uint64(g.now().UnixMilli()) - epoch
			}
		}
	} else {
		g.seq = 0
	}
	g.lastMS = ms

	return platform.ID(ms<<(machineBits+sequenceBits) | g.machine<<sequenceBits | g.seq)
}
