package templates

import (
	"fmt"
	"strings"

	"github.com/emiliopalmerini/mood/internal/domain"
)

func formatScore(score float64) string {
	return fmt.Sprintf("%+.2f", score)
}

func formatValence(r *domain.StoredRecord) string {
	return r.Valence.String() + " (" + formatScore(r.ValenceScore) + ")"
}

func joinLabels(labels []domain.Label) string {
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.String()
	}
	return strings.Join(names, ", ")
}

func joinAssociations(assocs []domain.Association) string {
	names := make([]string, len(assocs))
	for i, a := range assocs {
		names[i] = a.String()
	}
	return strings.Join(names, ", ")
}
