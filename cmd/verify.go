package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <model>",
	Short: "Check that a structure can be analysed",
	Long: `Run the pre-analysis checks on the structure of a model file:
  - connectivity (independent blocks of nodes and bars)
  - coincident nodes
  - zero-length bars
  - translational supports in X, Y and Z

The command fails when any check is Critical.

Examples:
  goframe verify frame.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	p, _, err := loadProject(args[0])
	if err != nil {
		return err
	}
	report := p.Verify()
	printReport(cmd, report)
	return report.Err()
}

func printReport(cmd *cobra.Command, report *verify.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "STRUCTURE VERIFICATION:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Check\tStatus\tDetail\n")
	fmt.Fprintf(w, "  ─────\t──────\t──────\n")
	for _, e := range report.Entries {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", e.Check, e.Severity, e.Detail)
	}
	w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Result: %s\n", report.Severity())
	fmt.Fprintln(out)
}
