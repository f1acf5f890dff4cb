package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/shrdlite/internal/presentation/tui"
	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/aretw0/shrdlite/pkg/planner"
	"golang.org/x/term"
)

const helpMarkdown = `# Shrdlite REPL

Type a **parse tree** as JSON and the engine interprets it against the
current world, searches a plan, and applies it.

    {"command": "take", "entity": {"quantifier": "the", "object": {"form": "ball"}}}

Colon commands:

- ` + "`:world`" + ` — redraw the current world
- ` + "`:load <name|path>`" + ` — switch to a builtin world or a YAML file
- ` + "`:reset`" + ` — restore the world to its loaded state
- ` + "`:help`" + ` — this text
- ` + "`:quit`" + ` — leave
`

// RunREPL drives the interactive loop: worlds in, parse trees in, plans
// out. In JSON mode (or when stdin is not a terminal) it reads NDJSON and
// emits one JSON object per command, suitable for piping.
func RunREPL(ctx context.Context, rt *Runtime, worldArg string, jsonMode bool) error {
	w, name, err := LoadWorld(worldArg)
	if err != nil {
		return err
	}
	initial := w.Clone()

	interactive := !jsonMode && term.IsTerminal(int(os.Stdin.Fd()))
	render := tui.NewRenderer()

	if interactive {
		tui.PrintBanner()
		if help, err := render(fmt.Sprintf("Loaded world **%s**. `:help` for usage.", name)); err == nil {
			fmt.Print(help)
		}
		fmt.Print(tui.RenderWorld(w))
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			done, err := runColonCommand(rt, line, render, &w, &initial, interactive)
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			if done {
				return nil
			}
			continue
		}

		results, err := rt.Engine.Execute(ctx, w, line)
		if err != nil {
			reportError(err, jsonMode || !interactive)
			continue
		}

		first := results[0]
		if jsonMode || !interactive {
			out, _ := json.Marshal(map[string]any{
				"goal": first.Interpretation.Formula.String(),
				"plan": first.Plan,
			})
			fmt.Println(string(out))
		} else {
			fmt.Printf("goal: %s\n", first.Interpretation.Formula.String())
			fmt.Printf("plan: %s\n", strings.Join(first.Plan, " "))
		}

		next, err := planner.Replay(w, first.Plan)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error: plan replay failed:", err)
			continue
		}
		w = next
		if interactive {
			fmt.Print(tui.RenderWorld(w))
		}
	}
}

func runColonCommand(rt *Runtime, line string, render func(string) (string, error), w, initial **domain.WorldState, interactive bool) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true, nil
	case ":help":
		if out, err := render(helpMarkdown); err == nil {
			fmt.Print(out)
		} else {
			fmt.Print(helpMarkdown)
		}
	case ":world":
		fmt.Print(tui.RenderWorld(*w))
	case ":reset":
		*w = (*initial).Clone()
		if interactive {
			fmt.Print(tui.RenderWorld(*w))
		}
	case ":load":
		if len(fields) < 2 {
			return false, fmt.Errorf(":load needs a world name or path")
		}
		loaded, name, err := LoadWorld(fields[1])
		if err != nil {
			return false, err
		}
		*w = loaded
		*initial = loaded.Clone()
		rt.Logger.Info("world loaded", "world", name)
		if interactive {
			fmt.Print(tui.RenderWorld(*w))
		}
	default:
		return false, fmt.Errorf("unknown command %s", fields[0])
	}
	return false, nil
}

func reportError(err error, jsonMode bool) {
	var ambiguous *domain.AmbiguityError
	if errors.As(err, &ambiguous) && !jsonMode {
		// The clarification question is the useful part; print it plainly.
		fmt.Println(ambiguous.Error())
		return
	}
	if jsonMode {
		out, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Println(string(out))
		return
	}
	fmt.Fprintln(os.Stderr, "error:", err)
}
