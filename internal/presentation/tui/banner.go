package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the Cascade ASCII banner for interactive sessions.
func PrintBanner() {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"   ____                          _      ", "#38bdf8"},
		{"  / ___|__ _ ___  ___ __ _  __| | ___ ", "#22d3ee"},
		{" | |   / _` / __|/ __/ _` |/ _` |/ _ \\", "#2dd4bf"},
		{" | |__| (_| \\__ \\ (_| (_| | (_| |  __/", "#34d399"},
		{"  \\____\\__,_|___/\\___\\__,_|\\__,_|\\___|", "#4ade80"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}
