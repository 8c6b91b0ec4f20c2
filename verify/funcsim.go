package verify

import (
	"github.com/sarchlab/widthbridge/api"
	"github.com/sarchlab/widthbridge/bus"
)

// FunctionalMemory is a byte-addressed memory that applies accesses with
// plain little-endian semantics. Bytes never written read as zero. Bytes
// marked unknown make every load that touches them unknown.
type FunctionalMemory struct {
	bytes   map[uint32]byte
	unknown map[uint32]bool
}

// NewFunctionalMemory creates an all-zero memory.
func NewFunctionalMemory() *FunctionalMemory {
	return &FunctionalMemory{
		bytes:   make(map[uint32]byte),
		unknown: make(map[uint32]bool),
	}
}

// Preload writes a whole bus word at the aligned address of addr.
func (m *FunctionalMemory) Preload(addr uint32, word uint64) {
	base := bus.AlignAddress(addr)
	for i, b := range bus.WordToBytes(word) {
		m.setByte(base+uint32(i), b)
	}
}

// Store writes the low size bytes of data starting at addr. Stores without a
// size code are dropped.
func (m *FunctionalMemory) Store(addr uint32, size bus.AccessSize, data uint64) {
	n := size.ByteCount()
	for i, b := range bus.WordToBytes(data)[:n] {
		m.setByte(addr+uint32(i), b)
	}
}

// Load reads size bytes starting at addr and zero-extends them. known is false
// if any of the bytes is unknown or the size has no code.
func (m *FunctionalMemory) Load(
	addr uint32,
	size bus.AccessSize,
) (value uint64, known bool) {
	n := size.ByteCount()
	if n == 0 {
		return 0, false
	}

	data := make([]byte, n)
	for i := range data {
		a := addr + uint32(i)
		if m.unknown[a] {
			return 0, false
		}
		data[i] = m.bytes[a]
	}

	return bus.BytesToWord(data), true
}

// Invalidate marks n bytes starting at addr as unknown until they are written
// again.
func (m *FunctionalMemory) Invalidate(addr uint32, n int) {
	for i := 0; i < n; i++ {
		m.unknown[addr+uint32(i)] = true
	}
}

func (m *FunctionalMemory) setByte(addr uint32, b byte) {
	m.bytes[addr] = b
	delete(m.unknown, addr)
}

// Expectation is what the golden model predicts for one access.
type Expectation struct {
	Value uint64
	Known bool
}

// Run applies a trace and returns one expectation per access. Accesses with a
// lint issue are not applied. A rejected store makes its bus word and the
// bytes it names unknown.
func (m *FunctionalMemory) Run(accesses []api.Access) []Expectation {
	rejected := make(map[int]bool)
	for _, issue := range RunLint(accesses) {
		rejected[issue.Index] = true
	}

	expectations := make([]Expectation, len(accesses))
	for i, access := range accesses {
		if rejected[i] {
			if access.Op == api.OpStore {
				m.Invalidate(bus.AlignAddress(access.Address), bus.WordBytes)
				m.Invalidate(access.Address, access.Size.ByteCount())
			}

			continue
		}

		if access.Op == api.OpStore {
			m.Store(access.Address, access.Size, access.Data)
			expectations[i] = Expectation{Known: true}

			continue
		}

		value, known := m.Load(access.Address, access.Size)
		expectations[i] = Expectation{Value: value, Known: known}
	}

	return expectations
}
