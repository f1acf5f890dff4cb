package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/muesli/termenv"
)

// Terminal colors for the object color names used by the worlds.
var colorCodes = map[string]string{
	"white":  "#e5e7eb",
	"black":  "#6b7280",
	"red":    "#ef4444",
	"green":  "#22c55e",
	"blue":   "#3b82f6",
	"yellow": "#eab308",
}

// RenderWorld draws the stacks as columns, bottom row last, with the arm
// marker above its column and the held object in the claw.
func RenderWorld(w *domain.WorldState) string {
	p := termenv.ColorProfile()

	// Each cell is five columns wide; the color wraps only the label so
	// the padding stays plain.
	cell := func(id string) string {
		label := fmt.Sprintf("[%s]", id)
		pad := 4 - len(label)
		if pad < 0 {
			pad = 0
		}
		colored := label
		if obj, ok := w.Object(id); ok {
			if code, known := colorCodes[obj.Color]; known {
				colored = termenv.String(label).Foreground(p.Color(code)).String()
			}
		}
		return " " + colored + strings.Repeat(" ", pad)
	}

	height := 0
	for _, s := range w.Stacks {
		if len(s) > height {
			height = len(s)
		}
	}

	var sb strings.Builder

	// Arm row: the claw sits over its column, holding its cargo if any.
	for col := range w.Stacks {
		if col == w.Arm {
			if w.Holding != "" {
				sb.WriteString(cell(w.Holding))
			} else {
				sb.WriteString("  \\/ ")
			}
		} else {
			sb.WriteString("     ")
		}
	}
	sb.WriteString("\n")

	for row := height - 1; row >= 0; row-- {
		for _, stack := range w.Stacks {
			if row < len(stack) {
				sb.WriteString(cell(stack[row]))
			} else {
				sb.WriteString("     ")
			}
		}
		sb.WriteString("\n")
	}

	// Floor with column numbers.
	sb.WriteString(strings.Repeat("-----", len(w.Stacks)))
	sb.WriteString("\n")
	for col := range w.Stacks {
		sb.WriteString(fmt.Sprintf("  %-3d", col+1))
	}
	sb.WriteString("\n")

	return sb.String()
}
