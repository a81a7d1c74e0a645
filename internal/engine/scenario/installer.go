package scenario

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/scenarios/internal/core/domain"
	"go.trai.ch/scenarios/internal/core/ports"
	"go.trai.ch/zerr"
)

// InstallOptions selects the scenario and strategy to install.
type InstallOptions struct {
	Scenario string
	Strategy string
	// Stream, when set, receives the install output live. Otherwise the output
	// is captured, progress rendering is disabled and failures log it.
	Stream io.Writer
	// Report receives the installed package list after a successful install in CI.
	Report io.Writer
}

// Installer installs a materialized scenario.
type Installer struct {
	packages ports.PackageManager
	logger   ports.Logger
	tracer   trace.Tracer
}

// NewInstaller creates a new Installer.
func NewInstaller(packages ports.PackageManager, logger ports.Logger) *Installer {
	return &Installer{
		packages: packages,
		logger:   logger,
		tracer:   otel.Tracer(TracerName),
	}
}

// WithTracer replaces the tracer taken from the global provider.
func (i *Installer) WithTracer(tracer trace.Tracer) *Installer {
	i.tracer = tracer
	return i
}

// Install validates and installs the scenario, returning the tool's exit code verbatim.
// The error is reserved for unknown scenarios, invalid strategies and tools that cannot start.
func (i *Installer) Install(ctx context.Context, settings *domain.Settings, opts InstallOptions) (int, error) {
	ctx, span := i.tracer.Start(ctx, "scenario.install", trace.WithAttributes(
		attribute.String("scenario", opts.Scenario),
		attribute.String("strategy", opts.Strategy),
	))
	defer span.End()

	code, err := i.install(ctx, settings, opts)
	span.SetAttributes(attribute.Int("exit_code", code))
	return code, recordError(span, err)
}

func (i *Installer) install(ctx context.Context, settings *domain.Settings, opts InstallOptions) (int, error) {
	if err := domain.ValidateScenarioName(opts.Scenario); err != nil {
		return 1, err
	}

	dir := settings.ScenarioDir(opts.Scenario)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		err := zerr.Wrap(domain.ErrScenarioNotFound, fmt.Sprintf("scenario '%s' has not been created", opts.Scenario))
		err = zerr.With(err, "scenario", opts.Scenario)
		return 1, zerr.With(err, "dir", dir)
	}

	cmd, err := domain.ParseStrategy(opts.Strategy)
	if err != nil {
		return 1, err
	}

	res, err := i.packages.Validate(ctx, dir)
	if err != nil {
		return 1, err
	}
	if res.Failed() {
		i.logCaptured(res)
		return res.ExitCode, nil
	}

	if opts.Stream != nil {
		cmd.Stdout = opts.Stream
	} else {
		cmd.Flags = append(cmd.Flags, "--no-progress")
	}

	res, err = i.packages.Install(ctx, dir, cmd)
	if err != nil {
		return 1, err
	}
	if res.Failed() {
		if opts.Stream == nil {
			i.logCaptured(res)
		}
		return res.ExitCode, nil
	}

	if settings.CI && opts.Report != nil {
		if err := i.report(ctx, settings.ProjectDir, opts.Report); err != nil {
			i.logger.Warn(err.Error())
		}
	}

	return 0, nil
}

// report writes the installed package list of dir to w.
func (i *Installer) report(ctx context.Context, dir string, w io.Writer) error {
	res, err := i.packages.Info(ctx, dir, w)
	if err != nil {
		return zerr.Wrap(err, "cannot list installed packages")
	}
	if res.Failed() {
		msg := fmt.Sprintf("cannot list installed packages (exit code %d)", res.ExitCode)
		return commandError(domain.ErrCommandFailed, msg, res)
	}
	return nil
}

func (i *Installer) logCaptured(res domain.CommandResult) {
	if out := strings.TrimSpace(res.Output); out != "" {
		i.logger.Warn(out)
	}
}
