package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/scenarios/internal/app"
	"go.trai.ch/scenarios/internal/core/domain"
)

func (c *CLI) newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario [name] [dependencies]",
		Short: "Install a scenario",
		Long: "Install a generated scenario into the project's vendor directory.\n\n" +
			"The dependencies strategy is one of install (default), lock, highest or lowest.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.InstallOptions{
				Scenario: domain.DefaultScenario,
				Strategy: string(domain.StrategyInstall),
			}
			if len(args) > 0 && args[0] != "" {
				opts.Scenario = args[0]
			}
			if len(args) > 1 && args[1] != "" {
				opts.Strategy = args[1]
			}

			opts.OutputMode, _ = cmd.Flags().GetString("output-mode")
			if ci, _ := cmd.Flags().GetBool("ci"); ci {
				opts.OutputMode = "linear"
			}

			return exitResult(c.app.InstallScenario(cmd.Context(), c.workingDir, opts))
		},
	}
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, interactive, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	return cmd
}

func (c *CLI) newScenarioCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario:create <name>",
		Short: "Create one scenario directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.CreateScenario(cmd.Context(), c.workingDir, args[0])
		},
	}
}

func (c *CLI) newScenarioUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario:update",
		Short: "Regenerate every scenario declared in extra.scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.UpdateScenarios(cmd.Context(), c.workingDir)
		},
	}
}
