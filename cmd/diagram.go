package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/action"
	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/errors"
)

var (
	diagramAction      string
	diagramCombination string
	diagramSlot        string
	diagramMember      int
	diagramSamples     int
	diagramWidth       int
	diagramHeight      int
	diagramTable       bool
	diagramOutput      string
)

var diagramCmd = &cobra.Command{
	Use:   "diagram <model>",
	Short: "Plot the diagram of one member",
	Long: `Plot one diagram of one bar, either for a load case (--action) or for a
combination of the model (--combination).

The diagram is drawn in the terminal with a summary of its extreme values.
Use --output to also export it as an image; the format follows the file
extension (.png, .svg or .pdf).

Examples:
  # Bending moment of bar 1 under load case G
  goframe diagram frame.yaml --action G --slot Mz --member 1

  # Shear of bar 0 in combination ULS, exported as SVG
  goframe diagram frame.yaml --combination ULS --slot Ty --output ty.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagram,
}

func init() {
	rootCmd.AddCommand(diagramCmd)

	diagramCmd.Flags().StringVarP(&diagramAction, "action", "a", "", "Load case to draw")
	diagramCmd.Flags().StringVarP(&diagramCombination, "combination", "c", "", "Combination to draw")
	diagramCmd.Flags().StringVarP(&diagramSlot, "slot", "s", "Mz", "Diagram to draw")
	diagramCmd.Flags().IntVarP(&diagramMember, "member", "m", 0, "Bar index")
	diagramCmd.Flags().IntVar(&diagramSamples, "samples", 20, "Samples per segment")
	diagramCmd.Flags().IntVar(&diagramWidth, "width", 60, "Plot width in characters")
	diagramCmd.Flags().IntVar(&diagramHeight, "height", 12, "Plot height in lines")
	diagramCmd.Flags().BoolVarP(&diagramTable, "table", "t", false, "Also list the sampled values")
	diagramCmd.Flags().StringVarP(&diagramOutput, "output", "o", "", "Export the diagram to an image file")

	diagramCmd.MarkFlagsMutuallyExclusive("action", "combination")
	diagramCmd.MarkFlagsOneRequired("action", "combination")
}

func runDiagram(cmd *cobra.Command, args []string) error {
	slot, err := action.ParseSlot(diagramSlot)
	if err != nil {
		return errors.Wrap(err, "--slot")
	}
	p, m, err := loadProject(args[0])
	if err != nil {
		return err
	}
	if err := p.Compute(cmd.Context(), m.Solver()); err != nil {
		return err
	}

	var target *action.Action
	switch {
	case diagramAction != "":
		a, ok := p.ActionByName(diagramAction)
		if !ok {
			return errors.Newf(errors.CodeInvalidArgument, "no action named %q", diagramAction)
		}
		target = a
	default:
		for _, c := range p.Combinations() {
			if c.Name != diagramCombination {
				continue
			}
			if target, err = p.Combine(c); err != nil {
				return err
			}
			break
		}
		if target == nil {
			return errors.Newf(errors.CodeInvalidArgument, "no combination named %q", diagramCombination)
		}
	}

	f, err := target.Function(slot, diagramMember)
	if err != nil {
		return err
	}
	f.Compact()
	title := fmt.Sprintf("%s, bar %d, %s", slot, diagramMember, target.Name)

	out := cmd.OutOrStdout()
	summary, err := diagram.Summarize(f, diagramSamples)
	if errors.Is(err, diagram.ErrNothingToDraw) {
		fmt.Fprintf(out, "\n  %s is zero everywhere.\n\n", title)
		return nil
	}
	if err != nil {
		return err
	}

	plot, err := diagram.DrawASCIIDiagram(f, diagramWidth, diagramHeight, title)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, plot)
	fmt.Fprintln(out)
	fmt.Fprint(out, diagram.DrawSummaryBox(title, summary.Lines(cfg.Decimals)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s = %s\n", slot, indent(f.Render(cfg.Decimals), "  "))

	if diagramTable {
		fmt.Fprintln(out)
		fmt.Fprint(out, diagram.DrawSampleTable(f, diagramSamples, cfg.Decimals))
	}

	if diagramOutput != "" {
		opts := diagram.ImageOptions{
			Title:      title,
			XLabel:     "x",
			YLabel:     slot.String(),
			PerSegment: diagramSamples,
			Decimals:   cfg.Decimals,
		}
		if err := diagram.ExportDiagram(f, opts, diagramOutput); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n  Diagram exported to %s\n", diagramOutput)
	}
	fmt.Fprintln(out)
	return nil
}
