package templates

import "github.com/emiliopalmerini/mood/internal/domain"

type VocabularyEntry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type ValenceEntry struct {
	Key   string  `json:"key"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type KindEntry struct {
	Key               string `json:"key"`
	Name              string `json:"name"`
	Scope             string `json:"scope"`
	RequiresSelection bool   `json:"requires_selection"`
}

// Vocabulary is the closed set of values a record can be built from.
type Vocabulary struct {
	ValenceLevels []ValenceEntry    `json:"valence_levels"`
	Labels        []VocabularyEntry `json:"labels"`
	Associations  []VocabularyEntry `json:"associations"`
	Kinds         []KindEntry       `json:"kinds"`
}

func NewVocabulary() Vocabulary {
	var v Vocabulary
	for _, level := range domain.AllValenceLevels() {
		score, _ := level.Score()
		v.ValenceLevels = append(v.ValenceLevels, ValenceEntry{Key: level.Key(), Name: level.String(), Score: score})
	}
	for _, l := range domain.AllLabels() {
		v.Labels = append(v.Labels, VocabularyEntry{Key: l.Key(), Name: l.String()})
	}
	for _, a := range domain.AllAssociations() {
		v.Associations = append(v.Associations, VocabularyEntry{Key: a.Key(), Name: a.String()})
	}
	for _, k := range domain.AllKinds() {
		v.Kinds = append(v.Kinds, KindEntry{
			Key:               k.Key(),
			Name:              k.String(),
			Scope:             string(domain.ScopeFor(k)),
			RequiresSelection: k.RequiresSelection(),
		})
	}
	return v
}

type IndexData struct {
	Vocabulary Vocabulary
	Recent     []*domain.StoredRecord
}
