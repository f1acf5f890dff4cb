// Package graph renders planner output as Mermaid diagrams.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/shrdlite/pkg/planner"
)

var actionNames = map[string]string{
	planner.ActionLeft:  "left",
	planner.ActionRight: "right",
	planner.ActionPick:  "pick",
	planner.ActionDrop:  "drop",
}

// GenerateMermaid produces a Mermaid flowchart for a plan: one node per
// world state along the path, edges labeled with the primitive actions.
// The start state is drawn as a circle, the goal state double-circled.
func GenerateMermaid(start planner.StateNode, plan []string) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	g := planner.StateGraph{}
	node := start
	index := 0

	write := func(i int, n planner.StateNode, opener, closer string) {
		sb.WriteString(fmt.Sprintf("    s%d%s\"%s\"%s\n", i, opener, escapeMermaid(g.NodeID(n)), closer))
	}

	write(0, node, "((", "))") // Start: circle

	for _, step := range plan {
		name, primitive := actionNames[step]
		if !primitive {
			continue // Utterances do not advance the world.
		}
		next, ok := g.Apply(node, step)
		if !ok {
			break
		}
		index++
		if index == countPrimitives(plan) {
			write(index, next, "(((", ")))") // Goal: double circle
		} else {
			write(index, next, "[", "]")
		}
		sb.WriteString(fmt.Sprintf("    s%d -- \"%s\" --> s%d\n", index-1, name, index))
		node = next
	}

	return sb.String()
}

func countPrimitives(plan []string) int {
	n := 0
	for _, step := range plan {
		if _, ok := actionNames[step]; ok {
			n++
		}
	}
	return n
}

func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "|", "/")
	return s
}
