package repository

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out record ids.
type IDGenerator interface {
	Next() string
}

// UUIDGenerator produces random version 4 UUIDs.
type UUIDGenerator struct{}

// Next returns a new UUID string.
func (UUIDGenerator) Next() string {
	return uuid.NewString()
}

// SequenceGenerator yields prefix1, prefix2, ... and is safe for concurrent use.
type SequenceGenerator struct {
	Prefix string
	n      atomic.Uint64
}

// Next returns the next id in the sequence.
func (g *SequenceGenerator) Next() string {
	return g.Prefix + strconv.FormatUint(g.n.Add(1), 10)
}
