package scenario

import (
	"strings"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/scenarios/internal/core/domain"
	"go.trai.ch/zerr"
)

// commandError wraps sentinel with the failing invocation's command line, exit code and output.
func commandError(sentinel error, msg string, res domain.CommandResult) error {
	err := zerr.Wrap(sentinel, msg)
	err = zerr.With(err, "command", res.CommandLine)
	err = zerr.With(err, "exit_code", res.ExitCode)
	return zerr.With(err, "output", strings.TrimSpace(res.Output))
}

// recordError marks span as failed when err is set and returns err unchanged.
func recordError(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
