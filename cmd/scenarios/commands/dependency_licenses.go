package commands

import "github.com/spf13/cobra"

func (c *CLI) newDependencyLicensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dependency-licenses",
		Short: "Add the licenses of the project's dependencies to its LICENSE file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.DependencyLicenses(cmd.Context(), c.workingDir)
		},
	}
}
