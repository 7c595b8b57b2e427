package domain

import (
	"strconv"
	"time"
)

// RecordBuilder turns observations into records. It holds no mutable state and is
// safe for concurrent use.
type RecordBuilder struct {
	now func() time.Time
}

// NewRecordBuilder creates a builder. A nil clock defaults to time.Now.
func NewRecordBuilder(now func() time.Time) RecordBuilder {
	if now == nil {
		now = time.Now
	}
	return RecordBuilder{now: now}
}

// Build validates obs against the completeness rule of kind and normalizes it.
func (b RecordBuilder) Build(obs MoodObservation, kind Kind) (NormalizedRecord, error) {
	if !kind.Valid() {
		return NormalizedRecord{}, &ValidationError{Code: CodeUnknownKind, Field: "kind", Kind: kind}
	}

	score, ok := obs.Valence.Score()
	if !ok {
		return NormalizedRecord{}, &ValidationError{Code: CodeUnknownValenceLevel, Field: "valence", Kind: kind}
	}

	// Sets can be built as literals, so membership is checked here as well as in Add.
	for l := range obs.Labels {
		if !l.Valid() {
			return NormalizedRecord{}, &ValidationError{Code: CodeUnknownLabel, Field: "label", Kind: kind, Value: strconv.Itoa(int(l))}
		}
	}
	for a := range obs.Associations {
		if !a.Valid() {
			return NormalizedRecord{}, &ValidationError{Code: CodeUnknownAssociation, Field: "association", Kind: kind, Value: strconv.Itoa(int(a))}
		}
	}

	if kind.RequiresSelection() {
		if obs.Labels.Len() == 0 {
			return NormalizedRecord{}, &ValidationError{Code: CodeIncompleteSelection, Field: "label", Kind: kind}
		}
		if obs.Associations.Len() == 0 {
			return NormalizedRecord{}, &ValidationError{Code: CodeIncompleteSelection, Field: "association", Kind: kind}
		}
	}

	var ts time.Time
	if obs.Timestamp != nil {
		ts = *obs.Timestamp
	} else {
		now := time.Now
		if b.now != nil {
			now = b.now
		}
		ts = now()
	}

	return NormalizedRecord{
		Kind:         kind,
		Valence:      obs.Valence,
		ValenceScore: score,
		Labels:       obs.Labels.Sorted(),
		Associations: obs.Associations.Sorted(),
		Notes:        obs.Notes,
		Timestamp:    ts,
	}, nil
}

// Build normalizes obs with the wall clock.
func Build(obs MoodObservation, kind Kind) (NormalizedRecord, error) {
	return RecordBuilder{}.Build(obs, kind)
}
