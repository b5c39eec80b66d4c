package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/aretw0/automata/pkg/domain"
)

// PrintBanner writes the automata banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct{ text, color string }{
		{"               _                        _        ", "#818cf8"},
		{"    __ _ _   _| |_ ___  _ __ ___   __ _| |_ __ _ ", "#a78bfa"},
		{"   / _` | | | | __/ _ \\| '_ ` _ \\ / _` | __/ _` |", "#c084fc"},
		{"  | (_| | |_| | || (_) | | | | | | (_| | || (_| |", "#e879f9"},
		{"   \\__,_|\\__,_|\\__\\___/|_| |_| |_|\\__,_|\\__\\__,_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}

// Verdict colours a verdict line: green when accepted, red otherwise.
func Verdict(v domain.Verdict, line string) string {
	p := termenv.ColorProfile()
	color := "#ef4444"
	if v.Accepted {
		color = "#22c55e"
	}
	return termenv.String(line).Foreground(p.Color(color)).Bold().String()
}
