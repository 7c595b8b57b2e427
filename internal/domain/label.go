package domain

import (
	"fmt"
	"sort"
)

// Label is an emotion descriptor from the fixed state-of-mind vocabulary.
type Label int

const (
	LabelAmazed Label = iota + 1
	LabelAmused
	LabelAngry
	LabelAnxious
	LabelAshamed
	LabelBrave
	LabelCalm
	LabelContent
	LabelDisappointed
	LabelDiscouraged
	LabelDisgusted
	LabelEmbarrassed
	LabelExcited
	LabelFrustrated
	LabelGrateful
	LabelGuilty
	LabelHappy
	LabelHopeless
	LabelIrritated
	LabelJealous
	LabelJoyful
	LabelLonely
	LabelPassionate
	LabelPeaceful
	LabelProud
	LabelRelieved
	LabelSad
	LabelScared
	LabelStressed
	LabelSurprised
	LabelWorried
	LabelAnnoyed
	LabelConfident
	LabelDrained
	LabelHopeful
	LabelIndifferent
	LabelOverwhelmed
	LabelSatisfied
)

var labelTable = []vocabEntry{
	{},
	{"amazed", "Amazed"},
	{"amused", "Amused"},
	{"angry", "Angry"},
	{"anxious", "Anxious"},
	{"ashamed", "Ashamed"},
	{"brave", "Brave"},
	{"calm", "Calm"},
	{"content", "Content"},
	{"disappointed", "Disappointed"},
	{"discouraged", "Discouraged"},
	{"disgusted", "Disgusted"},
	{"embarrassed", "Embarrassed"},
	{"excited", "Excited"},
	{"frustrated", "Frustrated"},
	{"grateful", "Grateful"},
	{"guilty", "Guilty"},
	{"happy", "Happy"},
	{"hopeless", "Hopeless"},
	{"irritated", "Irritated"},
	{"jealous", "Jealous"},
	{"joyful", "Joyful"},
	{"lonely", "Lonely"},
	{"passionate", "Passionate"},
	{"peaceful", "Peaceful"},
	{"proud", "Proud"},
	{"relieved", "Relieved"},
	{"sad", "Sad"},
	{"scared", "Scared"},
	{"stressed", "Stressed"},
	{"surprised", "Surprised"},
	{"worried", "Worried"},
	{"annoyed", "Annoyed"},
	{"confident", "Confident"},
	{"drained", "Drained"},
	{"hopeful", "Hopeful"},
	{"indifferent", "Indifferent"},
	{"overwhelmed", "Overwhelmed"},
	{"satisfied", "Satisfied"},
}

var labelIndex = buildIndex(labelTable)

// AllLabels returns the whole label vocabulary in raw-value order.
func AllLabels() []Label {
	out := make([]Label, 0, len(labelTable)-1)
	for raw := 1; raw < len(labelTable); raw++ {
		out = append(out, Label(raw))
	}
	return out
}

func (l Label) Valid() bool {
	return l >= LabelAmazed && l <= LabelSatisfied
}

func (l Label) Key() string {
	if !l.Valid() {
		return ""
	}
	return labelTable[l].key
}

func (l Label) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelTable[l].display
}

func (l Label) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLabel, int(l))
	}
	return []byte(l.Key()), nil
}

func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLabel resolves a label key or display name, case-insensitively.
func ParseLabel(s string) (Label, error) {
	raw, ok := labelIndex[normalizeKey(s)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
	}
	return Label(raw), nil
}

// LabelSet is a set of labels restricted to the vocabulary.
type LabelSet map[Label]struct{}

// NewLabelSet builds a set from labels, failing on the first value outside the vocabulary.
func NewLabelSet(labels ...Label) (LabelSet, error) {
	s := make(LabelSet, len(labels))
	for _, l := range labels {
		if err := s.Add(l); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ParseLabelSet parses every name and collects them into a set. Duplicates collapse.
func ParseLabelSet(names []string) (LabelSet, error) {
	s := make(LabelSet, len(names))
	for _, name := range names {
		l, err := ParseLabel(name)
		if err != nil {
			return nil, err
		}
		s[l] = struct{}{}
	}
	return s, nil
}

// Add inserts l, allocating the set on first use.
func (s *LabelSet) Add(l Label) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownLabel, int(l))
	}
	if *s == nil {
		*s = make(LabelSet)
	}
	(*s)[l] = struct{}{}
	return nil
}

func (s LabelSet) Contains(l Label) bool {
	_, ok := s[l]
	return ok
}

func (s LabelSet) Len() int { return len(s) }

// Sorted returns the members ordered by raw value.
func (s LabelSet) Sorted() []Label {
	out := make([]Label, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
