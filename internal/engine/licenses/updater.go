// Package licenses keeps the dependency license table in a project's license file current.
package licenses

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/scenarios/internal/core/domain"
	"go.trai.ch/scenarios/internal/core/ports"
	"go.trai.ch/zerr"
)

// TracerName is the instrumentation name of the license updater.
const TracerName = "go.trai.ch/scenarios/engine/licenses"

// BlockHeading introduces the generated dependency table.
const BlockHeading = "DEPENDENCY LICENSES:"

var (
	existingBlock = regexp.MustCompile(`(?s)\n*DEPENDENCY LICENSES.*`)
	outputHeader  = regexp.MustCompile(`(?s)^.*\n\n`)
	copyrightLine = regexp.MustCompile(`(?m)(^ *Copyright [^0-9]*[0-9]{4})([0-9-]*)`)
)

// Updater rewrites the license file from the package manager's license report.
type Updater struct {
	packages ports.PackageManager
	logger   ports.Logger
	tracer   trace.Tracer

	// Now supplies the current year for the copyright line.
	Now func() time.Time
}

// NewUpdater creates a new Updater using the wall clock.
func NewUpdater(packages ports.PackageManager, logger ports.Logger) *Updater {
	return &Updater{
		packages: packages,
		logger:   logger,
		tracer:   otel.Tracer(TracerName),
		Now:      time.Now,
	}
}

// WithTracer replaces the tracer taken from the global provider.
func (u *Updater) WithTracer(tracer trace.Tracer) *Updater {
	u.tracer = tracer
	return u
}

// Update refreshes the dependency block and copyright year of the project's license file.
// It reports false without touching anything when the file does not exist.
func (u *Updater) Update(ctx context.Context, settings *domain.Settings) (bool, error) {
	path := filepath.Join(settings.ProjectDir, settings.LicenseFile)

	ctx, span := u.tracer.Start(ctx, "licenses.update", trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	updated, err := u.update(ctx, settings.ProjectDir, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return updated, err
}

func (u *Updater) update(ctx context.Context, projectDir, path string) (bool, error) {
	// #nosec G304 -- path is the configured license file inside the project
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		u.logger.Debug(fmt.Sprintf("No license file at %s", path))
		return false, nil
	}
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrLicenseUpdateFailed.Error()), "path", path)
	}

	text := string(data)
	res, err := u.packages.Licenses(ctx, projectDir)
	switch {
	case err != nil:
		u.logger.Warn(fmt.Sprintf("cannot list dependency licenses: %v", err))
	case res.Failed():
		u.logger.Warn(fmt.Sprintf("%s exited with code %d; dependency licenses left unchanged", res.CommandLine, res.ExitCode))
	default:
		text = ReplaceBlock(text, res.Stdout)
	}
	text = UpdateCopyright(text, u.Now().Year())

	if err := os.WriteFile(path, []byte(text), domain.FilePerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrLicenseUpdateFailed.Error()), "path", path)
	}
	return true, nil
}

// ReplaceBlock drops any existing dependency block from license and appends a
// new one built from the license report. The report header, everything up to
// the last blank line, is left out.
func ReplaceBlock(license, report string) string {
	license = rtrim(existingBlock.ReplaceAllString(license, ""))

	lines := strings.Split(strings.TrimRight(report, "\n"), "\n")
	for i, line := range lines {
		lines[i] = rtrim(line)
	}
	table := outputHeader.ReplaceAllString(strings.Join(lines, "\n"), "")

	return license + rtrim("\n\n"+BlockHeading+"\n\n"+table)
}

// UpdateCopyright extends every "Copyright NNNN[-MMMM]" line to end at year,
// collapsing "year-year" to a single year.
func UpdateCopyright(license string, year int) string {
	y := fmt.Sprintf("%04d", year)
	license = copyrightLine.ReplaceAllString(license, "${1}-"+y)

	sameYear := regexp.MustCompile(`(?m)(^ *Copyright [^0-9]*` + y + `)-` + y)
	return sameYear.ReplaceAllString(license, "${1}")
}

func rtrim(s string) string {
	return strings.TrimRight(s, " \t\n\r\x00\x0b")
}
