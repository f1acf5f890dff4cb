package search

import (
	"container/heap"
	"context"
	"errors"
	"time"
)

// ErrNoPath is returned when the open queue drains without reaching a goal.
var ErrNoPath = errors.New("no path to a goal state")

// ErrTimeout is returned when the search exceeds its wall-clock budget.
var ErrTimeout = errors.New("search timed out")

// Edge is one outgoing transition of a node.
type Edge[N any] struct {
	To    N
	Cost  float64
	Label string
}

// Graph is the capability set the search needs: outgoing edges plus a
// deterministic node identity.
type Graph[N any] interface {
	Outgoing(n N) []Edge[N]
	NodeID(n N) string
}

// Result is a successful search outcome.
type Result[N any] struct {
	// Path runs from the start node to the goal node, inclusive.
	Path []N
	// Cost is the summed edge cost of the path.
	Cost float64
	// Expanded counts the nodes popped and expanded, for instrumentation.
	Expanded int
}

// AStar finds a lowest-cost path from start to some node satisfying goal.
// h must be admissible (a lower bound on the remaining cost) for the
// result to be optimal. A timeout of zero means no time bound; the bound
// is checked at the top of every pop iteration.
func AStar[N any](ctx context.Context, g Graph[N], start N, goal func(N) bool, h func(N) float64, timeout time.Duration) (*Result[N], error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	startID := g.NodeID(start)

	frontier := &queue{}
	heap.Init(frontier)

	nodes := map[string]N{startID: start}
	gScore := map[string]float64{startID: 0}
	parent := map[string]string{}
	closed := map[string]bool{}

	heap.Push(frontier, &entry{id: startID, g: 0, f: h(start)})

	expanded := 0
	for frontier.Len() > 0 {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return nil, ErrTimeout
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e := heap.Pop(frontier).(*entry)
		if closed[e.id] {
			continue
		}
		// A fresher entry for this node exists; this one is stale.
		if e.g > gScore[e.id] {
			continue
		}

		node := nodes[e.id]
		if goal(node) {
			return &Result[N]{
				Path:     reconstruct(nodes, parent, startID, e.id),
				Cost:     e.g,
				Expanded: expanded,
			}, nil
		}

		closed[e.id] = true
		expanded++

		for _, edge := range g.Outgoing(node) {
			id := g.NodeID(edge.To)
			if closed[id] {
				continue
			}
			tentative := e.g + edge.Cost
			if old, seen := gScore[id]; seen && tentative >= old {
				continue
			}
			nodes[id] = edge.To
			gScore[id] = tentative
			parent[id] = e.id
			heap.Push(frontier, &entry{id: id, g: tentative, f: tentative + h(edge.To)})
		}
	}

	return nil, ErrNoPath
}

func reconstruct[N any](nodes map[string]N, parent map[string]string, startID, goalID string) []N {
	var ids []string
	for id := goalID; ; {
		ids = append(ids, id)
		if id == startID {
			break
		}
		id = parent[id]
	}
	path := make([]N, len(ids))
	for i, id := range ids {
		path[len(ids)-1-i] = nodes[id]
	}
	return path
}
