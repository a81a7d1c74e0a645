// Package commands implements the CLI commands for the scenarios tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/scenarios/internal/app"
	"go.trai.ch/scenarios/internal/build"
)

// CLI represents the command line interface for scenarios.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	workingDir string
	verbose    bool
	json       bool
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(opts app.LogOptions)
	UpdateScenarios(ctx context.Context, dir string) error
	CreateScenario(ctx context.Context, dir, name string) error
	InstallScenario(ctx context.Context, dir string, opts app.InstallOptions) (int, error)
	UpdateLock(ctx context.Context, dir string, opts app.UpdateLockOptions) (int, error)
	DependencyLicenses(ctx context.Context, dir string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "scenarios",
		Short:         "Test Composer projects against alternate dependency sets",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			c.app.ConfigureLogging(app.LogOptions{Verbose: c.verbose, JSON: c.json})
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.workingDir, "working-dir", "d", ".", "Project directory containing the manifest")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Show package manager commands and output")
	flags.BoolVar(&c.json, "json", false, "Write diagnostics as JSON")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newScenarioCmd())
	rootCmd.AddCommand(c.newScenarioCreateCmd())
	rootCmd.AddCommand(c.newScenarioUpdateCmd())
	rootCmd.AddCommand(c.newUpdateLockCmd())
	rootCmd.AddCommand(c.newDependencyLicensesCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
