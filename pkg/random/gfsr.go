package random

// Four-tap GFSR after Ziff (1998): x[n] = x[n-A] ^ x[n-B] ^ x[n-C] ^ x[n-D].
const (
	gfsrA    = 471
	gfsrB    = 1586
	gfsrC    = 6988
	gfsrD    = 9689
	gfsrMask = 16383 // 2^14 - 1

	// DefaultGFSRSeed is used for seed 0 and by GFSRReset.
	DefaultGFSRSeed = 4357
)

// gfsrScale maps a 53-bit integer onto [0, 1).
const gfsrScale = 1.0 / 9007199254740992.0

type gfsrGenerator struct {
	nd int
	ra [gfsrMask + 1]uint32
}

func (gen *gfsrGenerator) Init(seed uint64) {
	s := uint32(seed)
	if s == 0 {
		s = DefaultGFSRSeed
	}

	// Fill the register bit by bit from the top bit of an LCG.
	for i := 0; i <= gfsrMask; i++ {
		var t uint32
		bit := uint32(0x80000000)
		for j := 0; j < 32; j++ {
			s = 69069 * s
			if s&0x80000000 != 0 {
				t |= bit
			}
			bit >>= 1
		}
		gen.ra[i] = t
	}

	// Make 32 of the words linearly independent.
	msb := uint32(0x80000000)
	mask := uint32(0xffffffff)
	for i := 0; i < 32; i++ {
		k := 7 + i*3
		gen.ra[k] &= mask
		gen.ra[k] |= msb
		mask >>= 1
		msb >>= 1
	}
	gen.nd = 32
}

func (gen *gfsrGenerator) next32() uint32 {
	gen.nd = (gen.nd + 1) & gfsrMask
	gen.ra[gen.nd] = gen.ra[(gen.nd+gfsrMask+1-gfsrA)&gfsrMask] ^
		gen.ra[(gen.nd+gfsrMask+1-gfsrB)&gfsrMask] ^
		gen.ra[(gen.nd+gfsrMask+1-gfsrC)&gfsrMask] ^
		gen.ra[(gen.nd+gfsrMask+1-gfsrD)&gfsrMask]
	return gen.ra[gen.nd]
}

// Next joins the top 27 bits of one word and the top 26 of the next.
func (gen *gfsrGenerator) Next() float64 {
	a := uint64(gen.next32() >> 5)
	b := uint64(gen.next32() >> 6)
	return float64(a<<26|b) * gfsrScale
}
