// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how external tool output is presented.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeInteractive streams tool output, including progress, to the terminal.
	ModeInteractive
	// ModeLinear captures tool output and disables progress rendering.
	ModeLinear
)

// DetectEnvironment returns the recommended output mode.
// Anything that is not a terminal, or any CI run, is linear.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	if !isTTY || ci != "" {
		return ModeLinear
	}
	return ModeInteractive
}

// ResolveMode applies the user's flag on top of auto-detection.
// userFlag should be one of: "auto", "interactive", "linear", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "interactive":
		return ModeInteractive
	case "linear", "ci":
		return ModeLinear
	default:
		return autoDetected
	}
}
