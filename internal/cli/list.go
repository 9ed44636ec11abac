package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepsort/pkg/sorter"
)

// algorithmInfo describes an algorithm for the list command.
var algorithmInfo = map[sorter.Algorithm]struct {
	complexity  string
	description string
}{
	sorter.Bubble:    {"O(n²)", "swaps adjacent out-of-order pairs, one pass at a time"},
	sorter.Insertion: {"O(n²)", "moves each value left until it meets a smaller one"},
	sorter.Selection: {"O(n²)", "scans for the minimum of the unsorted tail"},
	sorter.Merge:     {"O(n log n)", "bottom-up merging of runs of doubling width"},
	sorter.Heap:      {"O(n log n)", "builds a max-heap, then moves the root to the end"},
	sorter.Quick:     {"O(n log n)", "median-of-three partitioning with an explicit stack"},
	sorter.Bogo:      {"O(n·n!)", "shuffles until sorted"},
}

// listCommand creates the list command that shows the available algorithms.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available sorting algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := lipgloss.NewStyle().Foreground(colorCyan).Width(11)
			cost := lipgloss.NewStyle().Foreground(colorGray).Width(12)
			for _, a := range sorter.All() {
				info := algorithmInfo[a]
				fmt.Fprintln(stdout, name.Render(a.String())+cost.Render(info.complexity)+StyleDim.Render(info.description))
			}
			printNewline()
			printNextStep("Watch one", "stepsort visualize -a quick")
			return nil
		},
	}
}
