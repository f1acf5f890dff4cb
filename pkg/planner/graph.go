package planner

import (
	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/aretw0/shrdlite/pkg/search"
)

// The four primitive arm actions.
const (
	ActionLeft  = "l"
	ActionRight = "r"
	ActionPick  = "p"
	ActionDrop  = "d"
)

// Actions lists the primitive actions in probe order.
var Actions = []string{ActionLeft, ActionRight, ActionPick, ActionDrop}

// StateNode wraps one world state as a search node. Identity is the
// deterministic string form of the state.
type StateNode struct {
	World *domain.WorldState
}

// StateGraph is the implicit action graph over world states. It is
// stateless; all structure lives in the nodes.
type StateGraph struct{}

// NodeID returns the deterministic identity of a node.
func (StateGraph) NodeID(n StateNode) string { return n.World.ID() }

// Outgoing enumerates the legal successors of a node, each at cost 1.
// The input node is never mutated; every successor is built on a clone.
func (g StateGraph) Outgoing(n StateNode) []search.Edge[StateNode] {
	edges := make([]search.Edge[StateNode], 0, len(Actions))
	for _, a := range Actions {
		if next, ok := g.Apply(n, a); ok {
			edges = append(edges, search.Edge[StateNode]{To: next, Cost: 1, Label: a})
		}
	}
	return edges
}

// Apply probes a single primitive action against a clone of the node's
// state. It reports false when the action is illegal in that state.
func (StateGraph) Apply(n StateNode, action string) (StateNode, bool) {
	w := n.World.Clone()

	switch action {
	case ActionLeft:
		if w.Arm == 0 {
			return StateNode{}, false
		}
		w.Arm--

	case ActionRight:
		if w.Arm >= len(w.Stacks)-1 {
			return StateNode{}, false
		}
		w.Arm++

	case ActionPick:
		if w.Holding != "" {
			return StateNode{}, false
		}
		stack := w.Stacks[w.Arm]
		if len(stack) == 0 {
			return StateNode{}, false
		}
		w.Holding = stack[len(stack)-1]
		w.Stacks[w.Arm] = stack[:len(stack)-1]

	case ActionDrop:
		if w.Holding == "" {
			return StateNode{}, false
		}
		destID := w.Top(w.Arm)
		rel := domain.RelOntop
		if destID == "" {
			destID = domain.FloorID
		} else if obj, _ := w.Object(destID); obj.Form == domain.FormBox {
			rel = domain.RelInside
		}
		if !w.IsValidIn(w.Holding, destID, rel) {
			return StateNode{}, false
		}
		w.Stacks[w.Arm] = append(w.Stacks[w.Arm], w.Holding)
		w.Holding = ""

	default:
		return StateNode{}, false
	}

	return StateNode{World: w}, true
}
