package verify

import (
	"fmt"

	"github.com/sarchlab/widthbridge/api"
	"github.com/sarchlab/widthbridge/bus"
)

// RunLint performs static checks on an access trace.
// Returns a list of issues found, or empty list if no issues.
func RunLint(accesses []api.Access) []Issue {
	var issues []Issue

	for i, access := range accesses {
		if issue, ok := lintAccess(i, access); ok {
			issues = append(issues, issue)
		}
	}

	return issues
}

func lintAccess(index int, access api.Access) (Issue, bool) {
	if !access.Size.Valid() {
		return Issue{
			Type:   IssueSize,
			Index:  index,
			Access: access,
			Message: fmt.Sprintf("%s at 0x%08X has no size code, the bus "+
				"sees no strobe", access.Op, access.Address),
			Details: map[string]interface{}{
				"size": uint8(access.Size),
			},
		}, true
	}

	n := uint32(access.Size.ByteCount())
	offset := uint32(bus.LaneOffset(access.Address))

	if offset+n > bus.WordBytes {
		return Issue{
			Type:   IssueAlignment,
			Index:  index,
			Access: access,
			Message: fmt.Sprintf("%s %s at 0x%08X crosses the bus word at "+
				"0x%08X", access.Op, access.Size, access.Address,
				bus.AlignAddress(access.Address)+bus.WordBytes),
			Details: map[string]interface{}{
				"lane_offset":   offset,
				"dropped_bytes": offset + n - bus.WordBytes,
			},
		}, true
	}

	if access.Op == api.OpStore && offset%n != 0 {
		return Issue{
			Type:   IssueAlignment,
			Index:  index,
			Access: access,
			Message: fmt.Sprintf("store %s at 0x%08X is not aligned to its "+
				"width, replicated data lands in the wrong lanes",
				access.Size, access.Address),
			Details: map[string]interface{}{
				"lane_offset": offset,
			},
		}, true
	}

	return Issue{}, false
}
