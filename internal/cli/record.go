package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/mood/internal/domain"
	"github.com/emiliopalmerini/mood/internal/ports"
)

type recordOptions struct {
	kind         string
	valence      string
	labels       []string
	associations []string
	notes        string
	at           string
}

func newRecordCmd() *cobra.Command {
	opts := &recordOptions{}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a mood, state of mind or momentary emotion",
		Long: `Record how you feel.

Labels and associations accept keys or display names, case-insensitively,
and may be repeated or comma-separated. Run "mood vocab" for the full list.

Examples:
  mood record -v pleasant -l calm,grateful -a family
  mood record --kind daily_mood --valence "slightly unpleasant"
  mood record --kind momentary_emotion -v very_pleasant --notes "sunset"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "kind", "k", domain.FullStateOfMind.Key(), "Record kind: state_of_mind, daily_mood, momentary_emotion")
	cmd.Flags().StringVarP(&opts.valence, "valence", "v", "", "Valence level, e.g. neutral or \"very pleasant\" (required)")
	cmd.Flags().StringSliceVarP(&opts.labels, "label", "l", nil, "Emotion label (repeatable)")
	cmd.Flags().StringSliceVarP(&opts.associations, "association", "a", nil, "Life association (repeatable)")
	cmd.Flags().StringVarP(&opts.notes, "notes", "n", "", "Free-text notes")
	cmd.Flags().StringVar(&opts.at, "at", "", "When it was felt, RFC3339 (default: now)")
	_ = cmd.MarkFlagRequired("valence")

	return cmd
}

func (o *recordOptions) observation() (domain.MoodObservation, domain.Kind, error) {
	kind, err := domain.ParseKind(o.kind)
	if err != nil {
		return domain.MoodObservation{}, 0, err
	}
	valence, err := domain.ParseValenceLevel(o.valence)
	if err != nil {
		return domain.MoodObservation{}, 0, err
	}
	labels, err := domain.ParseLabelSet(o.labels)
	if err != nil {
		return domain.MoodObservation{}, 0, err
	}
	assocs, err := domain.ParseAssociationSet(o.associations)
	if err != nil {
		return domain.MoodObservation{}, 0, err
	}

	obs := domain.MoodObservation{
		Valence:      valence,
		Labels:       labels,
		Associations: assocs,
		Notes:        o.notes,
	}
	if o.at != "" {
		at, err := time.Parse(time.RFC3339, o.at)
		if err != nil {
			return domain.MoodObservation{}, 0, fmt.Errorf("invalid --at: %w", err)
		}
		obs.Timestamp = &at
	}
	return obs, kind, nil
}

func runRecord(cmd *cobra.Command, opts *recordOptions) error {
	obs, kind, err := opts.observation()
	if err != nil {
		return err
	}

	ctx := context.Background()
	app, err := NewAppContext(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	stored, err := app.Service.Record(ctx, obs, kind)
	switch {
	case errors.Is(err, domain.ErrIncompleteSelection):
		return fmt.Errorf("%w (add --label and --association)", err)
	case errors.Is(err, ports.ErrNotAuthorized):
		return fmt.Errorf("%w (run: mood auth grant %s)", err, domain.ScopeFor(kind))
	case err != nil:
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Recorded %s %s\n", stored.Kind, stored.ID)
	fmt.Fprintf(out, "  Valence: %s (%+.2f)\n", stored.Valence, stored.ValenceScore)
	if len(stored.Labels) > 0 {
		fmt.Fprintf(out, "  Labels: %s\n", joinKeys(stored.Labels))
	}
	if len(stored.Associations) > 0 {
		fmt.Fprintf(out, "  Associations: %s\n", joinKeys(stored.Associations))
	}
	return nil
}
