// Package verify checks access traces and simulation results of the width
// bridge.
//
// It has two complementary stages:
//
// 1. Static Lint (lint.go): checks every access of a trace on its own
//   - SIZE checks: the access width has a size code
//   - ALIGN checks: the access stays inside one bus word and, for stores,
//     starts on a multiple of its width
//
// 2. Functional Memory (funcsim.go): a byte-addressed golden model
//   - Applies loads and stores with plain little-endian semantics
//   - Has no notion of lanes, strobes or cycles
//   - Bytes touched by an access that lint rejects become unknown, so the
//     comparison only covers what the adapter is expected to get right
//
// GenerateReport (report.go) runs both stages and compares the golden results
// with the records of a simulated run.
//
// # Lane Model
//
// A bus word covers the eight bytes [addr&^7, addr&^7+8). Lane i holds byte
// addr&^7+i. A store places its data into the lanes by replication, so only a
// store that starts at a multiple of its width puts every byte where a plain
// memory would. A load shifts the word down by the lane offset, so any load
// that stays inside the word reads back what a plain memory holds.
package verify

import "github.com/sarchlab/widthbridge/api"

// IssueType categorizes lint issues
type IssueType string

const (
	IssueSize      IssueType = "SIZE"  // Width without a size code
	IssueAlignment IssueType = "ALIGN" // Access the lanes cannot express
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType              // SIZE or ALIGN
	Index   int                    // Position of the access in the trace
	Access  api.Access             // The offending access
	Message string                 // Human-readable description
	Details map[string]interface{} // Additional structured data
}
