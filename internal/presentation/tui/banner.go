package tui

import (
	"fmt"
	"io"
)

// PrintBanner writes the Meridian ASCII banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := Profile(w)
	// Sea to land gradient (teal to sand)
	lines := []struct{ text, color string }{
		{" __  __           _     _ _             ", "#22d3ee"},
		{"|  \\/  | ___ _ __(_) __| (_) __ _ _ __  ", "#2dd4bf"},
		{"| |\\/| |/ _ \\ '__| |/ _` | |/ _` | '_ \\ ", "#34d399"},
		{"| |  | |  __/ |  | | (_| | | (_| | | | |", "#a3e635"},
		{"|_|  |_|\\___|_|  |_|\\__,_|_|\\__,_|_| |_|", "#facc15"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, p.String("  world topology engine "+version).Faint())
	fmt.Fprintln(w)
}
