package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/mood/internal/domain"
)

type ExportRecord struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Scope        string   `json:"scope"`
	Valence      string   `json:"valence"`
	ValenceScore float64  `json:"valence_score"`
	Labels       []string `json:"labels"`
	Associations []string `json:"associations"`
	Notes        string   `json:"notes,omitempty"`
	StartAt      string   `json:"start_at"`
	EndAt        string   `json:"end_at"`
	CreatedAt    string   `json:"created_at"`
}

func toExportRecords(records []*domain.StoredRecord) []ExportRecord {
	out := make([]ExportRecord, 0, len(records))
	for _, r := range records {
		er := ExportRecord{
			ID:           r.ID,
			Kind:         r.Kind.Key(),
			Scope:        string(r.Scope),
			Valence:      r.Valence.Key(),
			ValenceScore: r.ValenceScore,
			Labels:       make([]string, len(r.Labels)),
			Associations: make([]string, len(r.Associations)),
			Notes:        r.Notes,
			StartAt:      r.Timestamp.UTC().Format(time.RFC3339),
			EndAt:        r.EndAt.UTC().Format(time.RFC3339),
			CreatedAt:    r.CreatedAt.UTC().Format(time.RFC3339),
		}
		for i, l := range r.Labels {
			er.Labels[i] = l.Key()
		}
		for i, a := range r.Associations {
			er.Associations[i] = a.Key()
		}
		out = append(out, er)
	}
	return out
}

func newExportCmd() *cobra.Command {
	var (
		format string
		output string
		kind   string
		period string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records to JSON or CSV",
		Long: `Export records for external analysis.

Examples:
  mood export --format json --output moods.json
  mood export --format csv --period month --output moods.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "csv" {
				return fmt.Errorf("unsupported format: %s (use json or csv)", format)
			}
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
			data := toExportRecords(records)

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if format == "json" {
				err = writeJSON(w, data)
			} else {
				err = writeCSV(w, data)
			}
			if err != nil {
				return err
			}

			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d records to %s\n", len(data), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Filter by record kind")
	cmd.Flags().StringVarP(&period, "period", "p", "all", "Time period: today, week, month, all")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum records to export (0 for all)")

	return cmd
}

func writeJSON(w io.Writer, data []ExportRecord) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, data []ExportRecord) error {
	writer := csv.NewWriter(w)

	header := []string{
		"id", "kind", "scope", "valence", "valence_score",
		"labels", "associations", "notes", "start_at", "end_at", "created_at",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range data {
		row := []string{
			r.ID, r.Kind, r.Scope, r.Valence, fmt.Sprintf("%.2f", r.ValenceScore),
			strings.Join(r.Labels, ";"), strings.Join(r.Associations, ";"), r.Notes,
			r.StartAt, r.EndAt, r.CreatedAt,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
