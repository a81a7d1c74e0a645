package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/scenarios/internal/app"
)

func (c *CLI) newUpdateLockCmd() *cobra.Command {
	var opts app.UpdateLockOptions

	cmd := &cobra.Command{
		Use:   "update:lock [packages...]",
		Short: "Update the lock file without downloading any dependencies",
		Long: "Upgrade dependencies to the latest versions allowed by the manifest and record\n" +
			"the result in the lock file. Nothing is installed; run the install command\n" +
			"afterwards to bring the vendor directory up to date.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Packages = args
			return exitResult(c.app.UpdateLock(cmd.Context(), c.workingDir, opts))
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.DryRun, "dry-run", false, "Output the operations but do not write the lock file")
	flags.BoolVar(&opts.NoDev, "no-dev", false, "Skip require-dev packages")
	flags.BoolVar(&opts.WithDependencies, "with-dependencies", false,
		"Also update dependencies of the listed packages, except root requirements")
	flags.BoolVar(&opts.WithAllDependencies, "with-all-dependencies", false,
		"Also update dependencies of the listed packages, including root requirements")
	flags.BoolVar(&opts.IgnorePlatformReqs, "ignore-platform-reqs", false, "Ignore php and ext- requirements")
	flags.BoolVar(&opts.PreferStable, "prefer-stable", false, "Prefer stable versions of dependencies")
	flags.BoolVar(&opts.PreferLowest, "prefer-lowest", false, "Prefer lowest versions of dependencies")
	flags.BoolVar(&opts.RootReqs, "root-reqs", false, "Restrict the update to first degree dependencies")
	return cmd
}
