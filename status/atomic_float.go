package status

import (
	"math"
	"sync/atomic"
)

// Float is an atomic float64 gauge, the zero value reads 0
type Float struct {
	bits atomic.Uint64
}

// Store sets the value
func (f *Float) Store(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Load returns the value
func (f *Float) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add adds delta and returns the new value
func (f *Float) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
