package engine

import (
	"fmt"

	"github.com/leilaShen/BoxStack/internal/model"
)

// verifyPlacement records a placement in the packer's disjoint set when
// verification is enabled. An overlap at this point is a defect in the
// engine's split logic or the caller's request sequence, not a runtime
// condition to recover from, so it fails loudly.
func verifyPlacement(set *model.DisjointSet, placed model.Box, engine string) {
	if set == nil {
		return
	}
	if !set.Add(placed) {
		panic(fmt.Sprintf("%s: placement %v overlaps an existing box", engine, placed))
	}
}
