package domain

import (
	"fmt"
	"io"

	"go.trai.ch/zerr"
)

// Strategy is the dependency strategy used when installing a scenario.
type Strategy string

const (
	// StrategyInstall installs from the scenario's lock.
	StrategyInstall Strategy = "install"
	// StrategyLock is an alias of StrategyInstall.
	StrategyLock Strategy = "lock"
	// StrategyDefault is an alias of StrategyInstall.
	StrategyDefault Strategy = "default"
	// StrategyHighest updates to the highest allowed versions.
	StrategyHighest Strategy = "highest"
	// StrategyLowest updates to the lowest allowed versions.
	StrategyLowest Strategy = "lowest"
)

// InstallCommand is the package-manager sub-command and flags a strategy maps to.
type InstallCommand struct {
	SubCommand string
	Flags      []string
	// Stdout, when set, receives the tool output live.
	Stdout io.Writer
}

// ParseStrategy maps a strategy name to its install command.
func ParseStrategy(name string) (InstallCommand, error) {
	switch Strategy(name) {
	case StrategyHighest:
		return InstallCommand{SubCommand: "update"}, nil
	case StrategyLowest:
		return InstallCommand{SubCommand: "update", Flags: []string{"--prefer-lowest"}}, nil
	case StrategyDefault, StrategyInstall, StrategyLock:
		return InstallCommand{SubCommand: "install"}, nil
	default:
		err := zerr.Wrap(ErrInvalidStrategy, fmt.Sprintf("unknown dependency strategy '%s'", name))
		return InstallCommand{}, zerr.With(err, "strategy", name)
	}
}
