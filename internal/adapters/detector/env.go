// Package detector inspects the environment to pick interactive or CI behaviour.
package detector

import (
	"os"

	"golang.org/x/term"
)

// Mode represents how press should behave towards the user.
type Mode int

const (
	// ModeInteractive means a person is watching a terminal.
	ModeInteractive Mode = iota
	// ModeCI means output goes to a log or a pipe.
	ModeCI
)

// DetectEnvironment returns ModeCI when stdout is not a terminal or CI is set.
func DetectEnvironment() Mode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) Mode {
	if !isTTY || ci == "true" || ci == "1" {
		return ModeCI
	}
	return ModeInteractive
}

// Interactive reports whether the environment allows side effects like opening a browser.
func (m Mode) Interactive() bool {
	return m == ModeInteractive
}

func (m Mode) String() string {
	if m == ModeInteractive {
		return "interactive"
	}
	return "ci"
}
