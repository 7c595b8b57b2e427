package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabularySizes(t *testing.T) {
	assert.Len(t, AllValenceLevels(), 7)
	assert.Len(t, AllLabels(), 38)
	assert.Len(t, AllAssociations(), 18)
	assert.Len(t, AllKinds(), 3)
}

func TestParseLabel_KeysAndDisplayNames(t *testing.T) {
	for _, l := range AllLabels() {
		byKey, err := ParseLabel(l.Key())
		require.NoError(t, err)
		assert.Equal(t, l, byKey)

		byName, err := ParseLabel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, byName)
	}
}

func TestParseAssociation_Forms(t *testing.T) {
	tests := []struct {
		input string
		want  Association
	}{
		{"current_events", AssociationCurrentEvents},
		{"Current Events", AssociationCurrentEvents},
		{"CURRENT-EVENTS", AssociationCurrentEvents},
		{"  self care ", AssociationSelfCare},
		{"Work", AssociationWork},
	}
	for _, tt := range tests {
		got, err := ParseAssociation(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestParse_RejectsUnknown(t *testing.T) {
	_, err := ParseLabel("ecstatic")
	assert.ErrorIs(t, err, ErrUnknownLabel)

	_, err = ParseAssociation("gardening")
	assert.ErrorIs(t, err, ErrUnknownAssociation)

	_, err = ParseValenceLevel("meh")
	assert.ErrorIs(t, err, ErrUnknownValenceLevel)

	_, err = ParseKind("weekly")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = ParseLabel("")
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestParseValenceLevel(t *testing.T) {
	for _, v := range AllValenceLevels() {
		got, err := ParseValenceLevel(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestParseKind(t *testing.T) {
	got, err := ParseKind("state of mind")
	require.NoError(t, err)
	assert.Equal(t, FullStateOfMind, got)

	got, err = ParseKind("momentary-emotion")
	require.NoError(t, err)
	assert.Equal(t, MomentaryEmotion, got)
}

func TestLabelSet_DeduplicatesAndRejectsOutOfVocabulary(t *testing.T) {
	s, err := ParseLabelSet([]string{"calm", "Calm", "CALM", "happy"})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(LabelCalm))
	assert.Equal(t, []Label{LabelCalm, LabelHappy}, s.Sorted())

	assert.ErrorIs(t, s.Add(Label(0)), ErrUnknownLabel)
	assert.ErrorIs(t, s.Add(Label(39)), ErrUnknownLabel)

	_, err = NewAssociationSet(AssociationFamily, Association(19))
	assert.ErrorIs(t, err, ErrUnknownAssociation)
}

func TestSets_AddOnZeroValue(t *testing.T) {
	var obs MoodObservation
	require.NoError(t, obs.Labels.Add(LabelCalm))
	require.NoError(t, obs.Associations.Add(AssociationFamily))
	assert.True(t, obs.Labels.Contains(LabelCalm))
	assert.Equal(t, 1, obs.Associations.Len())

	var empty LabelSet
	assert.ErrorIs(t, empty.Add(Label(0)), ErrUnknownLabel)
	assert.Nil(t, empty, "rejected add must not allocate")

	rec, err := Build(obs, FullStateOfMind)
	require.NoError(t, err)
	assert.Equal(t, []Label{LabelCalm}, rec.Labels)
}

func TestEnumsMarshalAsKeys(t *testing.T) {
	payload := struct {
		Kind    Kind          `json:"kind"`
		Valence ValenceLevel  `json:"valence"`
		Labels  []Label       `json:"labels"`
		Assocs  []Association `json:"associations"`
	}{FullStateOfMind, SlightlyPleasant, []Label{LabelProud}, []Association{AssociationSelfCare}}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"state_of_mind","valence":"slightly_pleasant","labels":["proud"],"associations":["self_care"]}`, string(data))

	var decoded struct {
		Valence ValenceLevel `json:"valence"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"valence":"Very Unpleasant"}`), &decoded))
	assert.Equal(t, VeryUnpleasant, decoded.Valence)

	_, err = json.Marshal(struct{ V ValenceLevel }{ValenceLevel(9)})
	assert.Error(t, err)
}

func TestScopeFor(t *testing.T) {
	assert.Equal(t, ScopeMindfulSession, ScopeFor(MomentaryEmotion))
	assert.Equal(t, ScopeStateOfMind, ScopeFor(DailyMood))
	assert.Equal(t, ScopeStateOfMind, ScopeFor(FullStateOfMind))

	scope, err := ParseScope("State Of Mind")
	require.NoError(t, err)
	assert.Equal(t, ScopeStateOfMind, scope)

	_, err = ParseScope("sleep")
	assert.Error(t, err)
}
