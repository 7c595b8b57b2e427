package domain

import "time"

// MoodObservation is the raw selection collected from a user.
type MoodObservation struct {
	Valence      ValenceLevel
	Labels       LabelSet
	Associations AssociationSet
	Notes        string
	// Timestamp is the moment the observation refers to; nil means "when built".
	Timestamp *time.Time
}

// NormalizedRecord is the canonical record handed to a HealthDataSink.
type NormalizedRecord struct {
	Kind         Kind
	Valence      ValenceLevel
	ValenceScore float64
	Labels       []Label
	Associations []Association
	Notes        string
	Timestamp    time.Time
}

// SampleEnd returns the end of the sample window the record covers.
func (r *NormalizedRecord) SampleEnd() time.Time {
	return r.Timestamp.Add(r.Kind.SampleWindow())
}

// StoredRecord is a NormalizedRecord as persisted by a sink.
type StoredRecord struct {
	ID string
	NormalizedRecord
	Scope     Scope
	EndAt     time.Time
	CreatedAt time.Time
}
