package domain

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

func fixedBuilder() RecordBuilder {
	return NewRecordBuilder(func() time.Time { return fixedNow })
}

func mustLabels(t *testing.T, labels ...Label) LabelSet {
	t.Helper()
	s, err := NewLabelSet(labels...)
	require.NoError(t, err)
	return s
}

func mustAssociations(t *testing.T, associations ...Association) AssociationSet {
	t.Helper()
	s, err := NewAssociationSet(associations...)
	require.NoError(t, err)
	return s
}

func TestBuild_ValenceScores(t *testing.T) {
	tests := []struct {
		level ValenceLevel
		want  float64
	}{
		{VeryUnpleasant, -1.0},
		{Unpleasant, -0.75},
		{SlightlyUnpleasant, -0.5},
		{Neutral, 0.0},
		{SlightlyPleasant, 0.25},
		{Pleasant, 0.5},
		{VeryPleasant, 1.0},
	}

	require.Len(t, tests, len(AllValenceLevels()))

	for _, tt := range tests {
		t.Run(tt.level.Key(), func(t *testing.T) {
			rec, err := fixedBuilder().Build(MoodObservation{Valence: tt.level}, MomentaryEmotion)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.ValenceScore)
			assert.Equal(t, tt.level, rec.Valence)
		})
	}
}

func TestBuild_IsDeterministic(t *testing.T) {
	ts := time.Date(2024, 12, 18, 20, 0, 0, 0, time.UTC)
	obs := MoodObservation{
		Valence:      Pleasant,
		Labels:       mustLabels(t, LabelHappy, LabelExcited, LabelCalm),
		Associations: mustAssociations(t, AssociationWork, AssociationFriends),
		Notes:        "Just finished a great project with my team!",
		Timestamp:    &ts,
	}

	first, err := Build(obs, FullStateOfMind)
	require.NoError(t, err)
	second, err := Build(obs, FullStateOfMind)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, ts, first.Timestamp)
	assert.Equal(t, []Label{LabelCalm, LabelExcited, LabelHappy}, first.Labels)
	assert.Equal(t, []Association{AssociationFriends, AssociationWork}, first.Associations)
}

func TestBuild_FullStateOfMindRequiresLabels(t *testing.T) {
	for _, associations := range []AssociationSet{nil, mustAssociations(t, AssociationHealth)} {
		_, err := fixedBuilder().Build(MoodObservation{
			Valence:      Neutral,
			Associations: associations,
		}, FullStateOfMind)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIncompleteSelection))
		assert.True(t, IsValidationError(err))

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "label", ve.Field)
	}
}

func TestBuild_FullStateOfMindRequiresAssociations(t *testing.T) {
	for _, labels := range []LabelSet{nil, mustLabels(t, LabelCalm)} {
		_, err := fixedBuilder().Build(MoodObservation{
			Valence: Neutral,
			Labels:  labels,
		}, FullStateOfMind)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIncompleteSelection)
	}
}

func TestBuild_LightweightKindsAllowEmptySelection(t *testing.T) {
	for _, kind := range []Kind{MomentaryEmotion, DailyMood} {
		t.Run(kind.Key(), func(t *testing.T) {
			rec, err := fixedBuilder().Build(MoodObservation{Valence: VeryPleasant}, kind)
			require.NoError(t, err)
			assert.Equal(t, 1.0, rec.ValenceScore)
			assert.Empty(t, rec.Labels)
			assert.Empty(t, rec.Associations)
			assert.Equal(t, kind, rec.Kind)
		})
	}
}

func TestBuild_NeutralStateOfMind(t *testing.T) {
	labels, err := ParseLabelSet([]string{"calm"})
	require.NoError(t, err)
	associations, err := ParseAssociationSet([]string{"health"})
	require.NoError(t, err)

	rec, err := fixedBuilder().Build(MoodObservation{
		Valence:      Neutral,
		Labels:       labels,
		Associations: associations,
	}, FullStateOfMind)

	require.NoError(t, err)
	assert.Equal(t, 0.0, rec.ValenceScore)
	assert.Equal(t, []Label{LabelCalm}, rec.Labels)
	assert.Equal(t, []Association{AssociationHealth}, rec.Associations)
	assert.Equal(t, "", rec.Notes)
}

func TestBuild_DefaultsTimestampToClock(t *testing.T) {
	rec, err := fixedBuilder().Build(MoodObservation{Valence: Neutral}, DailyMood)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, rec.Timestamp)

	before := time.Now()
	rec, err = Build(MoodObservation{Valence: Neutral}, DailyMood)
	require.NoError(t, err)
	assert.False(t, rec.Timestamp.Before(before))
}

func TestBuild_UnknownValenceLevel(t *testing.T) {
	for _, level := range []ValenceLevel{0, -3, 8, 42} {
		_, err := fixedBuilder().Build(MoodObservation{Valence: level}, MomentaryEmotion)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownValenceLevel)
		assert.NotErrorIs(t, err, ErrIncompleteSelection)
	}
}

func TestBuild_UnknownKind(t *testing.T) {
	_, err := fixedBuilder().Build(MoodObservation{Valence: Neutral}, Kind(99))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestBuild_RejectsMembersOutsideVocabulary(t *testing.T) {
	tests := []struct {
		name      string
		obs       MoodObservation
		kind      Kind
		wantErr   error
		wantCode  ValidationCode
		wantField string
	}{
		{
			name:      "label on lightweight kind",
			obs:       MoodObservation{Valence: Neutral, Labels: LabelSet{Label(0): {}}},
			kind:      DailyMood,
			wantErr:   ErrUnknownLabel,
			wantCode:  CodeUnknownLabel,
			wantField: "label",
		},
		{
			name: "association next to valid label",
			obs: MoodObservation{
				Valence:      Pleasant,
				Labels:       mustLabels(t, LabelCalm),
				Associations: AssociationSet{Association(99): {}},
			},
			kind:      MomentaryEmotion,
			wantErr:   ErrUnknownAssociation,
			wantCode:  CodeUnknownAssociation,
			wantField: "association",
		},
		{
			name: "invalid members cannot satisfy completeness",
			obs: MoodObservation{
				Valence:      Neutral,
				Labels:       LabelSet{Label(0): {}},
				Associations: AssociationSet{Association(99): {}},
			},
			kind:      FullStateOfMind,
			wantErr:   ErrUnknownLabel,
			wantCode:  CodeUnknownLabel,
			wantField: "label",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixedBuilder().Build(tt.obs, tt.kind)
			require.ErrorIs(t, err, tt.wantErr)
			assert.NotErrorIs(t, err, ErrIncompleteSelection)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantCode, ve.Code)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestBuild_DoesNotAliasInputSets(t *testing.T) {
	labels := mustLabels(t, LabelSad)
	rec, err := fixedBuilder().Build(MoodObservation{Valence: Unpleasant, Labels: labels}, MomentaryEmotion)
	require.NoError(t, err)

	require.NoError(t, labels.Add(LabelLonely))
	assert.Equal(t, []Label{LabelSad}, rec.Labels)
}

func TestBuild_ConcurrentCallers(t *testing.T) {
	b := fixedBuilder()
	obs := MoodObservation{
		Valence:      SlightlyUnpleasant,
		Labels:       mustLabels(t, LabelStressed, LabelDrained),
		Associations: mustAssociations(t, AssociationTasks),
	}
	want, err := b.Build(obs, FullStateOfMind)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := b.Build(obs, FullStateOfMind)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestNormalizedRecord_SampleEnd(t *testing.T) {
	momentary := NormalizedRecord{Kind: MomentaryEmotion, Timestamp: fixedNow}
	assert.Equal(t, fixedNow.Add(5*time.Minute), momentary.SampleEnd())

	daily := NormalizedRecord{Kind: DailyMood, Timestamp: fixedNow}
	assert.Equal(t, fixedNow, daily.SampleEnd())
}
