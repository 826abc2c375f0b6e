package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/eurocode"
)

var psiCmd = &cobra.Command{
	Use:   "psi",
	Short: "Print the ψ factors of every action category",
	Long: `Print the recommended ψ factors of EN 1990 Table A1.1.

The category code is what a model file puts in an action's "category" key.

Examples:
  goframe psi`,
	Args: cobra.NoArgs,
	Run:  runPsi,
}

func init() {
	rootCmd.AddCommand(psiCmd)
}

func runPsi(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "ψ FACTORS (EN 1990 Table A1.1):")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Code\tKind\tψ0\tψ1\tψ2\tDescription\n")
	fmt.Fprintf(w, "  ────\t────\t──\t──\t──\t───────────\n")
	for _, c := range eurocode.EN1990().Categories() {
		fmt.Fprintf(w, "  %d\t%s\t%.1f\t%.1f\t%.1f\t%s\n", c.Code, c.Kind, c.Psi0, c.Psi1, c.Psi2, c.Description)
	}
	w.Flush()
	fmt.Fprintln(out)
}
