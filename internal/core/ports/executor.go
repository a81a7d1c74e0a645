// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/scenarios/internal/core/domain"
)

// Executor defines the interface for running external processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes the command to completion and returns its exit code and captured output.
	//
	// A non-zero exit is reported through CommandResult.ExitCode, not as an error.
	// The error is reserved for commands that could not be started.
	Run(ctx context.Context, cmd domain.Command) (domain.CommandResult, error)
}
