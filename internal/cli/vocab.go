package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/mood/internal/domain"
	"github.com/emiliopalmerini/mood/internal/web/templates"
)

func newVocabCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Show valence levels, labels, associations and record kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(templates.NewVocabulary())
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

			fmt.Fprintln(tw, "VALENCE\tKEY\tSCORE")
			for _, v := range domain.AllValenceLevels() {
				score, _ := v.Score()
				fmt.Fprintf(tw, "%s\t%s\t%+.2f\n", v, v.Key(), score)
			}
			fmt.Fprintln(tw)

			fmt.Fprintln(tw, "KIND\tKEY\tSCOPE")
			for _, k := range domain.AllKinds() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", k, k.Key(), domain.ScopeFor(k))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\nLabels:\n  %s\n", joinKeys(domain.AllLabels()))
			fmt.Fprintf(out, "\nAssociations:\n  %s\n", joinKeys(domain.AllAssociations()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the vocabulary as JSON")
	return cmd
}
