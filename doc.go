/*
Package shrdlite is a natural-language command pipeline for a simulated
blocks world: a row of stacks of shaped, sized, colored objects
manipulated by a single overhead arm.

Parses of an utterance (delivered by an external grammar) are interpreted
against the current world into goal formulas in disjunctive normal form,
and an A* planner searches the space of world states for the shortest
sequence of primitive arm actions that satisfies one of them.

# Concept

The engine is the composition point of three pure cores: the interpreter
(referring-expression resolution and quantifier semantics), the state
graph (the four primitive actions under the physical laws), and the
planner (A* with a blocker-counting admissible heuristic). This Hexagonal
Architecture keeps parsing, persistence, and presentation in adapters, so
the engine embeds in any interface: CLI, HTTP server, or MCP host.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/shrdlite"
		"github.com/aretw0/shrdlite/pkg/domain"
		"github.com/aretw0/shrdlite/pkg/dsl"
	)

	func main() {
		w, err := dsl.New().
			Object("b", domain.FormBox, domain.SizeLarge, "yellow").
			Object("a", domain.FormBall, domain.SizeSmall, "black").
			Stack("a").
			Stack("b").
			Build()
		if err != nil {
			log.Fatal(err)
		}

		eng := shrdlite.New()
		results, err := eng.Execute(context.Background(), w,
			`{"command":"move",
			  "entity":{"quantifier":"the","object":{"form":"ball"}},
			  "location":{"relation":"inside","entity":{"quantifier":"the","object":{"form":"box"}}}}`)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(results[0].Plan)
	}

The default parser accepts pre-parsed JSON command trees; inject any
ports.Parser to plug in a real grammar.
*/
package shrdlite
