// Package bus defines the signal bundles exchanged between a requester, the
// width adapter, and a 64-bit memory bus.
package bus

import (
	"fmt"
	"strings"

	"github.com/sarchlab/akita/v4/sim"
)

// AccessSize is the 2-bit size code carried by a requester access.
type AccessSize uint8

const (
	Byte AccessSize = iota
	Half
	Word
	Double
)

// InvalidSize is used for accesses whose width has no size code. The adapter
// treats it as a no-op write.
const InvalidSize AccessSize = 0xFF

// String returns the name of the size.
func (s AccessSize) String() string {
	switch s {
	case Byte:
		return "Byte"
	case Half:
		return "Half"
	case Word:
		return "Word"
	case Double:
		return "Double"
	default:
		return fmt.Sprintf("AccessSize(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the four supported size codes.
func (s AccessSize) Valid() bool {
	return s <= Double
}

// ByteCount returns the number of bytes an access of size s touches, or 0 if
// s is not a supported code.
func (s AccessSize) ByteCount() int {
	if !s.Valid() {
		return 0
	}

	return 1 << s
}

// Mask keeps the low 8·2^s bits of a bus word. Unsupported codes keep the
// full word.
func (s AccessSize) Mask() uint64 {
	switch s {
	case Byte:
		return 0xFF
	case Half:
		return 0xFFFF
	case Word:
		return 0xFFFF_FFFF
	default:
		return ^uint64(0)
	}
}

// SizeFromByteCount converts an access width in bytes to its size code.
func SizeFromByteCount(n uint64) (AccessSize, bool) {
	switch n {
	case 1:
		return Byte, true
	case 2:
		return Half, true
	case 4:
		return Word, true
	case 8:
		return Double, true
	default:
		return InvalidSize, false
	}
}

// ParseAccessSize parses a size name such as "word" or "w".
func ParseAccessSize(name string) (AccessSize, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "byte", "b", "1":
		return Byte, nil
	case "half", "h", "2":
		return Half, nil
	case "word", "w", "4":
		return Word, nil
	case "double", "d", "8":
		return Double, nil
	default:
		return InvalidSize, fmt.Errorf("unknown access size %q", name)
	}
}

// A Device is a width adapter as seen from the requester side.
type Device interface {
	TopPort() sim.Port
}
