package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emiliopalmerini/mood/internal/domain"
)

func TestHelpers(t *testing.T) {
	rec := &domain.StoredRecord{NormalizedRecord: domain.NormalizedRecord{
		Valence:      domain.SlightlyPleasant,
		ValenceScore: 0.25,
		Labels:       []domain.Label{domain.LabelCalm, domain.LabelGrateful},
		Associations: []domain.Association{domain.AssociationSelfCare},
	}}

	assert.Equal(t, "Slightly Pleasant (+0.25)", formatValence(rec))
	assert.Equal(t, "Calm, Grateful", joinLabels(rec.Labels))
	assert.Equal(t, "Self Care", joinAssociations(rec.Associations))
	assert.Equal(t, "", joinLabels(nil))
}
