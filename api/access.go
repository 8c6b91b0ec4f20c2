package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/widthbridge/bus"
)

// Op tells loads from stores.
type Op int

const (
	OpLoad Op = iota
	OpStore
)

func (o Op) String() string {
	switch o {
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Access is one requester access of a trace.
type Access struct {
	Op      Op
	Size    bus.AccessSize
	Address uint32
	Data    uint64
}

// AccessFile is the layout of an access trace file.
type AccessFile struct {
	Accesses []AccessEntry `yaml:"accesses"`
}

// AccessEntry is an access as written in a trace file. Numbers may be decimal
// or prefixed with 0x.
type AccessEntry struct {
	Op      string `yaml:"op"`
	Size    string `yaml:"size"`
	Address string `yaml:"address"`
	Data    string `yaml:"data,omitempty"`
}

// LoadAccessFileFromYAML reads an access trace from a YAML file.
func LoadAccessFileFromYAML(path string) ([]Access, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	accesses, err := ParseAccesses(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return accesses, nil
}

// ParseAccesses decodes an access trace. A size given as a byte count other
// than 1, 2, 4 or 8 is kept as bus.InvalidSize so that it can be linted and
// simulated.
func ParseAccesses(data []byte) ([]Access, error) {
	var file AccessFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	accesses := make([]Access, 0, len(file.Accesses))
	for i, entry := range file.Accesses {
		access, err := entry.toAccess()
		if err != nil {
			return nil, fmt.Errorf("access %d: %w", i, err)
		}

		accesses = append(accesses, access)
	}

	return accesses, nil
}

// MarshalAccesses encodes accesses in the trace file layout. Accesses without a
// size code are written with size 0.
func MarshalAccesses(accesses []Access) ([]byte, error) {
	file := AccessFile{Accesses: make([]AccessEntry, 0, len(accesses))}
	for _, access := range accesses {
		file.Accesses = append(file.Accesses, access.toEntry())
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}

	return data, nil
}

func (a Access) toEntry() AccessEntry {
	entry := AccessEntry{
		Op:      a.Op.String(),
		Size:    "0",
		Address: fmt.Sprintf("0x%08X", a.Address),
	}

	if a.Size.Valid() {
		entry.Size = strings.ToLower(a.Size.String())
	}

	if a.Op == OpStore {
		entry.Data = fmt.Sprintf("0x%X", a.Data)
	}

	return entry
}

func (e AccessEntry) toAccess() (Access, error) {
	var access Access

	switch strings.ToLower(strings.TrimSpace(e.Op)) {
	case "load", "read", "ld":
		access.Op = OpLoad
	case "store", "write", "st":
		access.Op = OpStore
	default:
		return access, fmt.Errorf("unknown op %q", e.Op)
	}

	size, err := parseSize(e.Size)
	if err != nil {
		return access, err
	}
	access.Size = size

	addr, err := parseNumber(e.Address, 32)
	if err != nil {
		return access, fmt.Errorf("invalid address: %w", err)
	}
	access.Address = uint32(addr)

	if access.Op == OpStore {
		access.Data, err = parseNumber(e.Data, 64)
		if err != nil {
			return access, fmt.Errorf("invalid data: %w", err)
		}
	}

	return access, nil
}

func parseSize(s string) (bus.AccessSize, error) {
	size, err := bus.ParseAccessSize(s)
	if err == nil {
		return size, nil
	}

	if strings.TrimSpace(s) == "" {
		return bus.InvalidSize, fmt.Errorf("missing access size")
	}

	if _, numErr := parseNumber(s, 64); numErr == nil {
		return bus.InvalidSize, nil
	}

	return bus.InvalidSize, err
}

func parseNumber(s string, bits int) (uint64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return 0, nil
	}

	return strconv.ParseUint(s, 0, bits)
}
