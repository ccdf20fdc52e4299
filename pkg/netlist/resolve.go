// Package netlist turns pathfinder results into net membership: each
// result path is evidence that its two endpoints are electrically
// joined. When both a conditional and a non-conditional path exist for
// the same endpoint pair, the non-conditional one wins, mirroring the
// pathfinder's visited-override semantics.
package netlist

import (
	"sort"

	"github.com/dd0wney/cluso-netresolve/pkg/graph"
	"github.com/dd0wney/cluso-netresolve/pkg/pathfinder"
)

// Connection is one resolved electrical join between two interfaces.
type Connection struct {
	A graph.NodeID
	B graph.NodeID
	// ViaConditional is false when at least one non-conditional path
	// joins the pair.
	ViaConditional bool
	// Hops is the step count of the best (strong-preferred, then
	// shortest) path found for the pair.
	Hops int
}

type pairKey struct {
	a, b graph.NodeID
}

func keyFor(a, b graph.NodeID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// ResolvePairs collapses a search result into one Connection per endpoint
// pair. Self connections (zero-length paths) are dropped. Output is
// sorted by endpoint ids for deterministic consumption.
func ResolvePairs(result *pathfinder.Result) []Connection {
	best := make(map[pairKey]Connection)

	for _, p := range result.Paths {
		if p.Start == p.End {
			continue
		}
		key := keyFor(p.Start, p.End)
		conn := Connection{
			A:              key.a,
			B:              key.b,
			ViaConditional: p.ViaConditional,
			Hops:           len(p.Steps),
		}

		prev, seen := best[key]
		if !seen {
			best[key] = conn
			continue
		}
		// Strong beats weak; among equals, fewer hops win.
		if prev.ViaConditional && !conn.ViaConditional {
			best[key] = conn
			continue
		}
		if prev.ViaConditional == conn.ViaConditional && conn.Hops < prev.Hops {
			best[key] = conn
		}
	}

	out := make([]Connection, 0, len(best))
	for _, conn := range best {
		out = append(out, conn)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// ConnectedTo reports whether the result contains evidence that start and
// target are joined, and whether only conditionally.
func ConnectedTo(result *pathfinder.Result, start, target graph.NodeID) (connected, viaConditional bool) {
	if start == target {
		return true, false
	}
	key := keyFor(start, target)
	for _, conn := range ResolvePairs(result) {
		if keyFor(conn.A, conn.B) == key {
			return true, conn.ViaConditional
		}
	}
	return false, false
}
