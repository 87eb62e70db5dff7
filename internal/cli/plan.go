package cli

import (
	"github.com/spf13/cobra"

	jsmodules "github.com/goliatone/go-jsmodules"
)

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "List the scripts a bootstrap would process",
		Long: `List every script a bootstrap of the selected tree would process, in
processing order, without compiling anything.

Text output is one tab-separated line per script: tier, name, path.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(rootOpts, cmd)
		},
	}
}

func runPlan(opts *RootOptions, cmd *cobra.Command) error {
	tree, err := opts.tree()
	if err != nil {
		return err
	}
	filter, err := opts.filter()
	if err != nil {
		return err
	}

	units, err := jsmodules.Plan(tree, filter)
	if err != nil {
		return failure("plan failed", err)
	}
	return writeUnits(cmd.OutOrStdout(), opts.Format, units)
}
