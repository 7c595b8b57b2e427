package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Record moods and states of mind",
		Long: `mood records how you feel as normalized health records.

A record has a valence on a seven-level scale from Very Unpleasant to
Very Pleasant, plus optional emotion labels and life associations.
A full state of mind needs at least one of each; daily moods and
momentary emotions can be saved with the valence alone.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newRecordCmd(),
		newListCmd(),
		newStatsCmd(),
		newExportCmd(),
		newVocabCmd(),
		newAuthCmd(),
		newMigrateCmd(),
		newServeCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
