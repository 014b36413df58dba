package montecarlo

// Seed is a 48-bit generator state split into three 16-bit words,
// least significant word first.
type Seed [3]uint16

const (
	rand48Mul  = 0x5DEECE66D
	rand48Add  = 0xB
	rand48Mask = 1<<48 - 1
)

// Rand48 is the 48-bit linear congruential generator of the drand48 family:
//
//	X(n+1) = (0x5DEECE66D * X(n) + 0xB) mod 2^48
//
// A Rand48 is not safe for concurrent use. Each worker owns its own.
type Rand48 struct {
	x uint64
}

func NewRand48(seed Seed) *Rand48 {
	r := &Rand48{}
	r.SetState(seed)
	return r
}

// SetState replaces the whole 48-bit state.
func (r *Rand48) SetState(seed Seed) {
	r.x = uint64(seed[2])<<32 | uint64(seed[1])<<16 | uint64(seed[0])
}

func (r *Rand48) next() uint64 {
	// the product wraps at 2^64, which is a multiple of 2^48
	r.x = (r.x*rand48Mul + rand48Add) & rand48Mask
	return r.x
}

// Float64 advances the stream and returns a value in [0, 1) built from all
// 48 state bits.
func (r *Rand48) Float64() float64 {
	return float64(r.next()) * 0x1p-48
}
