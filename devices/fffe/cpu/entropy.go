package cpu

import "math/rand"

// Entropy supplies random bytes to the RND instruction.
type Entropy interface {
	Byte() byte
}

type randEntropy struct {
	rng *rand.Rand
}

// NewEntropy returns a pseudo-random byte source with the given seed.
func NewEntropy(seed int64) Entropy {
	return &randEntropy{rng: rand.New(rand.NewSource(seed))}
}

func (e *randEntropy) Byte() byte {
	return byte(e.rng.Intn(0x100))
}
