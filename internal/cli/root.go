package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepsort/pkg/buildinfo"
	"github.com/matzehuels/stepsort/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the logger is attached to the command context
// and the logging hooks are registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Stepsort animates sorting algorithms one step at a time",
		Long: `Stepsort runs classic sorting algorithms as step-by-step state machines.

Every step performs at most one comparison or one write and reports which
positions it touched, so the algorithms can be watched in the terminal,
traced, benchmarked by step count, and verified exhaustively.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			hooks := &logHooks{logger: c.Logger}
			observability.SetSortHooks(hooks)
			observability.SetVisualizerHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/stepsort/config.toml)")

	// Register all subcommands
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.benchCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.heapTreeCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
