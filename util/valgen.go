// Some helpers using closures to generate values and access traces
package valgen

import (
	"math/rand"

	"github.com/sarchlab/widthbridge/api"
	"github.com/sarchlab/widthbridge/bus"
)

func MakeConstGen(constant uint64) func() uint64 {
	return func() uint64 {
		return constant
	}
}

func MakeIncreasingGen(start, step uint64) func() uint64 {
	current := start
	return func() uint64 {
		v := current
		current += step
		return v
	}
}

func MakeRandomGen(rng *rand.Rand) func() uint64 {
	return func() uint64 {
		return rng.Uint64()
	}
}

// MakeAccessGen returns a generator of naturally aligned loads and stores
// inside [base, base+span). span is rounded down to whole bus words and must
// cover at least one.
func MakeAccessGen(rng *rand.Rand, base uint32, span uint32) func() api.Access {
	words := span / bus.WordBytes
	if words == 0 {
		panic("span must cover at least one bus word")
	}

	data := MakeRandomGen(rng)

	return func() api.Access {
		size := bus.AccessSize(rng.Intn(4))
		lanes := bus.WordBytes / size.ByteCount()

		access := api.Access{
			Size: size,
			Address: bus.AlignAddress(base) +
				uint32(rng.Intn(int(words)))*bus.WordBytes +
				uint32(rng.Intn(lanes)*size.ByteCount()),
		}

		if rng.Intn(2) == 0 {
			access.Op = api.OpStore
			access.Data = data() & size.Mask()
		}

		return access
	}
}

// GenerateTrace returns n accesses from gen.
func GenerateTrace(n int, gen func() api.Access) []api.Access {
	accesses := make([]api.Access, n)
	for i := range accesses {
		accesses[i] = gen()
	}

	return accesses
}
