package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/mood/internal/domain"
)

func newStatsCmd() *cobra.Command {
	var (
		kind   string
		period string
		top    int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize recorded moods",
		Long: `Summarize recorded moods over a period.

Examples:
  mood stats                  # This week
  mood stats -p month -t 3    # This month, top 3 labels and associations
  mood stats -k daily_mood -p all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := listOptions(kind, period, 0, time.Now())
			if err != nil {
				return err
			}

			ctx := context.Background()
			app, err := NewAppContext(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			st, err := app.Service.Summary(ctx, opts, top)
			if err != nil {
				return err
			}
			return printStats(cmd, period, st)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Filter by record kind")
	cmd.Flags().StringVarP(&period, "period", "p", "week", "Time period: today, week, month, all")
	cmd.Flags().IntVarP(&top, "top", "t", 5, "Number of labels and associations to show (0 for all)")

	return cmd
}

func printStats(cmd *cobra.Command, period string, st domain.SummaryStats) error {
	out := cmd.OutOrStdout()
	if st.RecordCount == 0 {
		fmt.Fprintf(out, "No records for period %q.\n", period)
		return nil
	}

	fmt.Fprintf(out, "Records:        %d (%d with notes)\n", st.RecordCount, st.RecordsWithNotes)
	fmt.Fprintf(out, "Average score:  %+.2f\n", st.AverageScore)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nKIND\tCOUNT")
	for _, k := range domain.AllKinds() {
		if n := st.ByKind[k]; n > 0 {
			fmt.Fprintf(tw, "%s\t%d\n", k.Key(), n)
		}
	}
	fmt.Fprintln(tw, "\nVALENCE\tCOUNT")
	for _, v := range domain.AllValenceLevels() {
		if n := st.ByValence[v]; n > 0 {
			fmt.Fprintf(tw, "%s\t%d\n", v.Key(), n)
		}
	}
	if len(st.TopLabels) > 0 {
		fmt.Fprintln(tw, "\nLABEL\tCOUNT")
		for _, l := range st.TopLabels {
			fmt.Fprintf(tw, "%s\t%d\n", l.Label.Key(), l.Count)
		}
	}
	if len(st.TopAssociations) > 0 {
		fmt.Fprintln(tw, "\nASSOCIATION\tCOUNT")
		for _, a := range st.TopAssociations {
			fmt.Fprintf(tw, "%s\t%d\n", a.Association.Key(), a.Count)
		}
	}
	return tw.Flush()
}
