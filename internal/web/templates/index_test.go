package templates

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/mood/internal/domain"
)

func TestNewVocabulary(t *testing.T) {
	v := NewVocabulary()
	assert.Len(t, v.ValenceLevels, 7)
	assert.Len(t, v.Labels, 38)
	assert.Len(t, v.Associations, 18)
	require.Len(t, v.Kinds, 3)

	assert.Equal(t, ValenceEntry{Key: "slightly_pleasant", Name: "Slightly Pleasant", Score: 0.25}, v.ValenceLevels[4])
	assert.Equal(t, "mindful_session", v.Kinds[0].Scope)
	assert.True(t, v.Kinds[2].RequiresSelection)
}

func TestIndex_RendersVocabularyAndRecent(t *testing.T) {
	rec := &domain.StoredRecord{
		ID: "r1",
		NormalizedRecord: domain.NormalizedRecord{
			Kind:         domain.DailyMood,
			Valence:      domain.Unpleasant,
			ValenceScore: -0.75,
			Labels:       []domain.Label{domain.LabelStressed},
			Associations: []domain.Association{domain.AssociationWork},
			Notes:        "<script>alert(1)</script>",
			Timestamp:    time.Date(2026, 2, 1, 18, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	err := Index(IndexData{Vocabulary: NewVocabulary(), Recent: []*domain.StoredRecord{rec}}).Render(context.Background(), &buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "Very Unpleasant")
	assert.Contains(t, html, "Current Events")
	assert.Contains(t, html, "Unpleasant (-0.75)")
	assert.Contains(t, html, "Stressed")
	assert.NotContains(t, html, "<script>", "notes are never rendered")
}

func TestIndex_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Index(IndexData{Vocabulary: NewVocabulary()}).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "No records yet.")
}
