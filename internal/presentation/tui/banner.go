package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs an ASCII art banner for Shrdlite.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Subtle gradient (indigo into rose), one color per line.
	s1 := termenv.String("  ____  _              _ _ _ _       ").Foreground(p.Color("#818cf8"))
	s2 := termenv.String(" / ___|| |__  _ __ __| | (_) |_ ___  ").Foreground(p.Color("#a78bfa"))
	s3 := termenv.String(" \\___ \\| '_ \\| '__/ _` | | | __/ _ \\ ").Foreground(p.Color("#c084fc"))
	s4 := termenv.String("  ___) | | | | | | (_| | | | ||  __/ ").Foreground(p.Color("#e879f9"))
	s5 := termenv.String(" |____/|_| |_|_|  \\__,_|_|_|\\__\\___| ").Foreground(p.Color("#fb7185"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
