package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/vector/internal/bench"
)

// policyInfo describes one growth policy accepted by --growth.
type policyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var policies = []policyInfo{
	{"one", "add one slot per growth step (default)"},
	{"double", "double the capacity, starting at one slot"},
	{"block", "round up to the next multiple of --block slots"},
}

// NewPoliciesCommand creates the "policies" command.
func NewPoliciesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List growth policies and workload operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPolicies(cmd.OutOrStdout())
		},
	}
}

func printPolicies(w io.Writer) error {
	if jsonOutput {
		return writeJSON(w, map[string]any{
			"policies":   policies,
			"operations": bench.Ops,
		})
	}

	fmt.Fprintf(w, "%-8s %s\n", "POLICY", "DESCRIPTION")
	for _, p := range policies {
		fmt.Fprintf(w, "%-8s %s\n", p.Name, p.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OPERATIONS")
	for _, op := range bench.Ops {
		fmt.Fprintln(w, op)
	}
	return nil
}
