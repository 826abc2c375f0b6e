package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/combination"
	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/eurocode"
	"github.com/alexiusacademia/goframe/internal/nscp"
)

var (
	combineLimitState string
	combineSlot       string
	combineMember     int
	combineEnvelope   bool
	combineSamples    int
)

var combineCmd = &cobra.Command{
	Use:   "combine <model>",
	Short: "Combine the load cases of a model",
	Long: `Verify the structure, populate the diagrams of every load case from its
loads and combine them.

Combinations come from the model file, or are generated from the ψ factors
of each action category with --limit-state:
  uls       - ULS fundamental, EN 1990 eq. 6.10 (γG = 1.35 and 1.00)
  sls-char  - SLS characteristic
  sls-freq  - SLS frequent
  sls-qp    - SLS quasi-permanent
  nscp      - NSCP 2015 Section 203.3.1 strength design combinations
  nscp-gravity - NSCP 1.4D and 1.2D + 1.6L only

Diagrams: N, Ty, Tz, Mx, My, Mz, Ux, Uy, Uz, Rx, Ry, Rz

Examples:
  # Combinations listed in the model
  goframe combine frame.yaml

  # Generated ULS combinations, moment diagram of bar 0 and the envelope
  goframe combine frame.yaml --limit-state uls --slot Mz --member 0 --envelope`,
	Args: cobra.ExactArgs(1),
	RunE: runCombine,
}

func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().StringVarP(&combineLimitState, "limit-state", "l", "", "Generate combinations for a limit state (uls, sls-char, sls-freq, sls-qp, nscp, nscp-gravity)")
	combineCmd.Flags().StringVarP(&combineSlot, "slot", "s", "Mz", "Diagram to print")
	combineCmd.Flags().IntVarP(&combineMember, "member", "m", -1, "Bar index to print, -1 for all")
	combineCmd.Flags().BoolVarP(&combineEnvelope, "envelope", "e", false, "Print the minimum and maximum over all combinations")
	combineCmd.Flags().IntVar(&combineSamples, "samples", 20, "Samples per segment used for extrema")
}

func runCombine(cmd *cobra.Command, args []string) error {
	slot, err := action.ParseSlot(combineSlot)
	if err != nil {
		return errors.Wrap(err, "--slot")
	}
	p, m, err := loadProject(args[0])
	if err != nil {
		return err
	}

	switch combineLimitState {
	case "":
	case "nscp", "nscp-gravity":
		combos := nscp.LoadCombinations
		if combineLimitState == "nscp-gravity" {
			combos = nscp.SimplifiedCombinations
		}
		generated, skipped, err := nscp.Generate(p.Actions(), p.Table(), combos)
		if err != nil {
			return err
		}
		for _, name := range skipped {
			logger.Warn("action %q has no NSCP load type and is left out", name)
		}
		for _, c := range generated {
			if err := p.AddCombination(c); err != nil {
				return err
			}
		}
	default:
		ls, ok := eurocode.ParseLimitState(combineLimitState)
		if !ok {
			return errors.Newf(errors.CodeInvalidArgument, "--limit-state: unknown limit state %q", combineLimitState)
		}
		if _, err := p.GenerateCombinations(ls); err != nil {
			return err
		}
	}
	if len(p.Combinations()) == 0 {
		return errors.New(errors.CodeInvalidArgument, "the model has no combinations; use --limit-state to generate some")
	}

	members := p.Structure().MemberCount()
	if combineMember >= members {
		return errors.Newf(errors.CodeInvalidArgument, "--member %d: the model has %d bars", combineMember, members)
	}

	if err := p.Compute(cmd.Context(), m.Solver()); err != nil {
		return err
	}
	results, err := p.CombineAll(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	combs := p.Combinations()
	for i, res := range results {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
		fmt.Fprintf(out, "  %s\n", res.Name)
		fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
		if err := printEntries(cmd, combs[i]); err != nil {
			return err
		}
		for member := 0; member < members; member++ {
			if combineMember >= 0 && member != combineMember {
				continue
			}
			f, err := res.Function(slot, member)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "  %s, bar %d:\n", slot, member)
			fmt.Fprintf(out, "    %s\n", indent(f.Render(cfg.Decimals), "    "))
		}
	}

	if combineEnvelope {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "ENVELOPE OF %s:\n", slot)
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Bar\tMin\tx\tGoverns\tMax\tx\tGoverns\n")
		for member := 0; member < members; member++ {
			if combineMember >= 0 && member != combineMember {
				continue
			}
			lo, hi, ok, err := combination.Envelope(results, slot, member, combineSamples)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(w, "  %d\t-\t\t\t-\t\t\n", member)
				continue
			}
			d := cfg.Decimals
			fmt.Fprintf(w, "  %d\t%.*f\t%.*f\t%s\t%.*f\t%.*f\t%s\n", member,
				d, lo.Point.Y, d, lo.Point.X, lo.Action,
				d, hi.Point.Y, d, hi.Point.X, hi.Action)
		}
		w.Flush()
	}
	fmt.Fprintln(out)
	return nil
}

func printEntries(cmd *cobra.Command, c combination.Combination) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Action\tψ\tValue\tWeight\n")
	fmt.Fprintf(w, "  ──────\t─\t─────\t──────\n")
	for _, e := range c.Entries {
		psi, err := e.Action.PsiValue(e.Psi)
		if err != nil {
			return errors.Wrapf(err, "combination %q action %q", c.Name, e.Action.Name)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%.2f\n", e.Action.Name, e.Psi, psi.Format(cfg.Decimals), e.Weight)
	}
	return w.Flush()
}
