package random

import (
	"math/rand"
)

// golangGenerator backs the "C" source with the standard library generator.
type golangGenerator struct {
	r *rand.Rand
}

func (gen *golangGenerator) Init(seed uint64) {
	gen.r = rand.New(rand.NewSource(int64(seed)))
}

func (gen *golangGenerator) Next() float64 {
	return gen.r.Float64()
}
