// Command gen-world emits random, schema-valid world documents for
// exercising the planner.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/aretw0/shrdlite/internal/worlds"
	"github.com/aretw0/shrdlite/pkg/domain"
	"gopkg.in/yaml.v3"
)

var (
	forms  = []domain.Form{domain.FormBrick, domain.FormPlank, domain.FormBall, domain.FormPyramid, domain.FormBox, domain.FormTable}
	sizes  = []domain.Size{domain.SizeSmall, domain.SizeLarge}
	colors = []string{"white", "black", "red", "green", "blue", "yellow"}
)

func main() {
	numStacks := flag.Int("stacks", 5, "number of stack columns")
	numObjects := flag.Int("objects", 8, "number of objects to attempt to place")
	seed := flag.Int64("seed", 1, "random seed")
	name := flag.String("name", "generated", "world name")
	out := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	def := worlds.Definition{
		Name:    *name,
		Objects: map[string]domain.Object{},
		Stacks:  make([][]string, *numStacks),
	}
	for i := range def.Stacks {
		def.Stacks[i] = []string{}
	}

	for i := 0; i < *numObjects; i++ {
		id := fmt.Sprintf("%c", 'a'+i%26)
		if i >= 26 {
			id = fmt.Sprintf("%c%d", 'a'+i%26, i/26)
		}
		obj := domain.Object{
			Form:  forms[rng.Intn(len(forms))],
			Size:  sizes[rng.Intn(len(sizes))],
			Color: colors[rng.Intn(len(colors))],
		}

		// Try the columns in random order until the object may legally
		// rest on some top; objects that fit nowhere are left out.
		cols := rng.Perm(*numStacks)
		for _, col := range cols {
			stack := def.Stacks[col]
			destID := domain.FloorID
			dest := domain.Floor
			rel := domain.RelOntop
			if len(stack) > 0 {
				destID = stack[len(stack)-1]
				dest = def.Objects[destID]
				if dest.Form == domain.FormBox {
					rel = domain.RelInside
				}
			}
			if domain.IsValid(id, destID, obj, dest, rel) {
				def.Objects[id] = obj
				def.Stacks[col] = append(stack, id)
				break
			}
		}
	}

	def.Arm = rng.Intn(*numStacks)

	if err := def.World().Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "generated an inconsistent world: %v\n", err)
		os.Exit(1)
	}

	data, err := yaml.Marshal(&def)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal world: %v\n", err)
		os.Exit(1)
	}

	if *out == "" {
		fmt.Print(string(data))
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}
}
