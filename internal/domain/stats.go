package domain

import "sort"

// SummaryStats holds aggregate statistics across records.
type SummaryStats struct {
	RecordCount      int
	ByKind           map[Kind]int
	ByValence        map[ValenceLevel]int
	AverageScore     float64
	TopLabels        []LabelCount
	TopAssociations  []AssociationCount
	RecordsWithNotes int
}

// LabelCount holds how often a label was selected.
type LabelCount struct {
	Label Label
	Count int
}

// AssociationCount holds how often an association was selected.
type AssociationCount struct {
	Association Association
	Count       int
}

// Summarize aggregates records. Top lists are ordered by count, ties by
// vocabulary position, and cut at top entries (0 keeps all).
// AverageScore is 0 when there are no records.
func Summarize(records []*StoredRecord, top int) SummaryStats {
	s := SummaryStats{
		RecordCount: len(records),
		ByKind:      make(map[Kind]int),
		ByValence:   make(map[ValenceLevel]int),
	}
	if len(records) == 0 {
		return s
	}

	labels := make(map[Label]int)
	assocs := make(map[Association]int)
	var total float64
	for _, r := range records {
		s.ByKind[r.Kind]++
		s.ByValence[r.Valence]++
		total += r.ValenceScore
		if r.Notes != "" {
			s.RecordsWithNotes++
		}
		for _, l := range r.Labels {
			labels[l]++
		}
		for _, a := range r.Associations {
			assocs[a]++
		}
	}
	s.AverageScore = total / float64(len(records))

	for l, n := range labels {
		s.TopLabels = append(s.TopLabels, LabelCount{Label: l, Count: n})
	}
	sort.Slice(s.TopLabels, func(i, j int) bool {
		if s.TopLabels[i].Count != s.TopLabels[j].Count {
			return s.TopLabels[i].Count > s.TopLabels[j].Count
		}
		return s.TopLabels[i].Label < s.TopLabels[j].Label
	})

	for a, n := range assocs {
		s.TopAssociations = append(s.TopAssociations, AssociationCount{Association: a, Count: n})
	}
	sort.Slice(s.TopAssociations, func(i, j int) bool {
		if s.TopAssociations[i].Count != s.TopAssociations[j].Count {
			return s.TopAssociations[i].Count > s.TopAssociations[j].Count
		}
		return s.TopAssociations[i].Association < s.TopAssociations[j].Association
	})

	if top > 0 {
		if len(s.TopLabels) > top {
			s.TopLabels = s.TopLabels[:top]
		}
		if len(s.TopAssociations) > top {
			s.TopAssociations = s.TopAssociations[:top]
		}
	}
	return s
}
