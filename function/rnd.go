package function

import "math"

const (
	rndMultiplier = 1140671485
	rndIncrement  = 12820163
	rndModulus    = 1 << 24
)

// RandState reproduces VBA's Rnd LCG: x <- (x*1140671485 + 12820163) mod
// 2^24, returned as a single-precision value in [0, 1).
type RandState struct {
	x    uint32
	last float64
}

// NewRandState returns a state seeded with the fixed value x=1, so repeated
// process runs reproduce the same sequence absent an explicit negative-seed
// reseed.
func NewRandState() *RandState {
	return &RandState{x: 1}
}

// Next advances the LCG and returns the new value, recording it so a
// following Rnd(0) can repeat it.
func (r *RandState) Next() float64 {
	r.x = (r.x*rndMultiplier + rndIncrement) % rndModulus
	r.last = float64(float32(r.x) / float32(rndModulus))
	return r.last
}

// Repeat returns the last value produced, without advancing the sequence.
func (r *RandState) Repeat() float64 {
	return r.last
}

// Reseed derives a new internal state from seed's bit pattern (as a
// single-precision float) and returns the first value the reseeded
// sequence produces.
func (r *RandState) Reseed(seed float64) float64 {
	bits := math.Float32bits(float32(seed))
	r.x = bits & (rndModulus - 1)
	return r.Next()
}
