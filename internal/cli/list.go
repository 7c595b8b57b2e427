package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/mood/internal/util"
)

func newListCmd() *cobra.Command {
	var (
		kind   string
		period string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded moods, newest first",
		Long: `List recorded moods, newest first.

Examples:
  mood list
  mood list --period week --kind daily_mood
  mood list -n 5 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := listOptions(kind, period, limit, time.Now())
			if err != nil {
				return err
			}

			ctx := context.Background()
			app, err := NewAppContext(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			records, err := app.Service.List(ctx, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(toExportRecords(records))
			}

			if len(records) == 0 {
				fmt.Fprintln(out, "No records found.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tKIND\tVALENCE\tSCORE\tLABELS\tASSOCIATIONS\tID")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%+.2f\t%s\t%s\t%s\n",
					util.FormatDateTime(r.Timestamp),
					r.Kind.Key(),
					r.Valence.Key(),
					r.ValenceScore,
					dashIfEmpty(joinKeys(r.Labels)),
					dashIfEmpty(joinKeys(r.Associations)),
					r.ID,
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Filter by record kind")
	cmd.Flags().StringVarP(&period, "period", "p", "all", "Time period: today, week, month, all")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum records to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")

	return cmd
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
