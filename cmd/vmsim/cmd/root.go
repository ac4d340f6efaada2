// Package cmd provides the command-line interface of vmsim.
package cmd

import (
	"fmt"
	"os"

	"github.com/sarchlab/vmsim/sim"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// NewRootCommand creates the vmsim command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vmsim",
		Short: "vmsim simulates a demand-paged virtual memory.",
		Long: `vmsim simulates a virtual memory that translates addresses ` +
			`through a multi-level page table, allocating tables on demand ` +
			`and swapping data pages out when physical frames run out.`,
		SilenceUsage: true,
		PersistentPreRun: func(c *cobra.Command, _ []string) {
			if unique, _ := c.Flags().GetBool("unique-ids"); unique {
				sim.UseUniqueIDGenerator()
			}
		},
	}

	addConfigFlags(rootCmd)

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newScenarioCommand())

	return rootCmd
}

// Execute runs the command given on the command line and exits. Exit
// handlers, such as the ones that flush traces, run before the process ends.
func Execute() {
	err := NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
