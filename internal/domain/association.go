package domain

import (
	"fmt"
	"sort"
)

// Association is the life-domain context attached to an observation.
type Association int

const (
	AssociationCommunity Association = iota + 1
	AssociationCurrentEvents
	AssociationDating
	AssociationEducation
	AssociationFamily
	AssociationFitness
	AssociationFriends
	AssociationHealth
	AssociationHobbies
	AssociationIdentity
	AssociationMoney
	AssociationPartner
	AssociationSelfCare
	AssociationSpirituality
	AssociationTasks
	AssociationTravel
	AssociationWork
	AssociationWeather
)

var associationTable = []vocabEntry{
	{},
	{"community", "Community"},
	{"current_events", "Current Events"},
	{"dating", "Dating"},
	{"education", "Education"},
	{"family", "Family"},
	{"fitness", "Fitness"},
	{"friends", "Friends"},
	{"health", "Health"},
	{"hobbies", "Hobbies"},
	{"identity", "Identity"},
	{"money", "Money"},
	{"partner", "Partner"},
	{"self_care", "Self Care"},
	{"spirituality", "Spirituality"},
	{"tasks", "Tasks"},
	{"travel", "Travel"},
	{"work", "Work"},
	{"weather", "Weather"},
}

var associationIndex = buildIndex(associationTable)

// AllAssociations returns the whole association vocabulary in raw-value order.
func AllAssociations() []Association {
	out := make([]Association, 0, len(associationTable)-1)
	for raw := 1; raw < len(associationTable); raw++ {
		out = append(out, Association(raw))
	}
	return out
}

func (a Association) Valid() bool {
	return a >= AssociationCommunity && a <= AssociationWeather
}

func (a Association) Key() string {
	if !a.Valid() {
		return ""
	}
	return associationTable[a].key
}

func (a Association) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Association(%d)", int(a))
	}
	return associationTable[a].display
}

func (a Association) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAssociation, int(a))
	}
	return []byte(a.Key()), nil
}

func (a *Association) UnmarshalText(text []byte) error {
	parsed, err := ParseAssociation(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAssociation resolves an association key or display name, case-insensitively.
func ParseAssociation(s string) (Association, error) {
	raw, ok := associationIndex[normalizeKey(s)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAssociation, s)
	}
	return Association(raw), nil
}

// AssociationSet is a set of associations restricted to the vocabulary.
type AssociationSet map[Association]struct{}

func NewAssociationSet(associations ...Association) (AssociationSet, error) {
	s := make(AssociationSet, len(associations))
	for _, a := range associations {
		if err := s.Add(a); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func ParseAssociationSet(names []string) (AssociationSet, error) {
	s := make(AssociationSet, len(names))
	for _, name := range names {
		a, err := ParseAssociation(name)
		if err != nil {
			return nil, err
		}
		s[a] = struct{}{}
	}
	return s, nil
}

func (s *AssociationSet) Add(a Association) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAssociation, int(a))
	}
	if *s == nil {
		*s = make(AssociationSet)
	}
	(*s)[a] = struct{}{}
	return nil
}

func (s AssociationSet) Contains(a Association) bool {
	_, ok := s[a]
	return ok
}

func (s AssociationSet) Len() int { return len(s) }

func (s AssociationSet) Sorted() []Association {
	out := make([]Association, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
