package prettyprinter

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

var (
	colorOnce sync.Once
	colorOn   bool
)

// ColorEnabled reports whether stdout wants ANSI color. The answer is
// detected once and cached.
func ColorEnabled() bool {
	colorOnce.Do(func() {
		colorOn = detectColor()
	})
	return colorOn
}

func detectColor() bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	// Not a terminal
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiCyan  = "\x1b[36m"
)

func accent(on bool, s string) string {
	if !on {
		return s
	}
	return ansiBold + ansiCyan + s + ansiReset
}

func dim(on bool, s string) string {
	if !on {
		return s
	}
	return ansiDim + s + ansiReset
}
