package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/mmu"
	"github.com/spf13/cobra"
)

type scenarioStep struct {
	write bool
	addr  uint64
	value vm.Word
}

// The demonstration runs on 4 frames of 4 words with 2 table levels. Frame 0
// is the root, so the third page forces an eviction.
var (
	scenarioConfig = vm.Config{OffsetWidth: 2, TablesDepth: 2, NumFrames: 4}
	scenarioSteps  = []scenarioStep{
		{write: true, addr: 0, value: 7},
		{addr: 0, value: 7},
		{write: true, addr: 4, value: 9},
		{addr: 4, value: 9},
		{addr: 0, value: 7},
		{write: true, addr: 8, value: 11},
		{addr: 8, value: 11},
		{addr: 0, value: 7},
		{write: true, addr: 0, value: 21},
		{addr: 0, value: 21},
		{addr: 4, value: 9},
		{addr: 8, value: 11},
	}
)

func newScenarioCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario",
		Short: "Walk through a small paging scenario step by step.",
		Long: `Scenario builds a virtual memory with 4 frames of 4 words and ` +
			`2 table levels, performs a fixed sequence of reads and writes ` +
			`and prints the resident pages after every step.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runScenario(c.OutOrStdout())
		},
	}
}

func runScenario(w io.Writer) error {
	m := mmu.MakeBuilder().WithConfig(scenarioConfig).Build("MMU")

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "step\taccess\tvalue\tfaults\tevictions\tresident (page@frame)")

	var failed error
	for i, step := range scenarioSteps {
		op, value, err := doScenarioStep(m, step)
		if err != nil {
			return err
		}

		if !step.write && value != step.value && failed == nil {
			failed = fmt.Errorf("step %d: %s returned %d, want %d",
				i+1, op, value, step.value)
		}

		stats := m.Stats()
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\n",
			i+1, op, value, stats.PageFaults, stats.Evictions,
			formatResidentPages(m.ResidentPages()))
	}

	tw.Flush()

	return failed
}

func doScenarioStep(m *mmu.Comp, step scenarioStep) (string, vm.Word, error) {
	if step.write {
		op := fmt.Sprintf("write(%d, %d)", step.addr, step.value)
		return op, step.value, m.Write(step.addr, step.value)
	}

	op := fmt.Sprintf("read(%d)", step.addr)
	value, err := m.Read(step.addr)

	return op, value, err
}

func formatResidentPages(pages []vm.ResidentPage) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, fmt.Sprintf("%d@%d", p.Page, p.Frame))
	}

	return strings.Join(parts, " ")
}
