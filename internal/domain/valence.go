package domain

import "fmt"

// ValenceLevel is the 7-point pleasantness classification a user picks.
// Raw values start at 1; the zero value is not a level.
type ValenceLevel int

const (
	VeryUnpleasant ValenceLevel = iota + 1
	Unpleasant
	SlightlyUnpleasant
	Neutral
	SlightlyPleasant
	Pleasant
	VeryPleasant
)

var valenceTable = []vocabEntry{
	{},
	{"very_unpleasant", "Very Unpleasant"},
	{"unpleasant", "Unpleasant"},
	{"slightly_unpleasant", "Slightly Unpleasant"},
	{"neutral", "Neutral"},
	{"slightly_pleasant", "Slightly Pleasant"},
	{"pleasant", "Pleasant"},
	{"very_pleasant", "Very Pleasant"},
}

// valenceScores keeps the literal product values. The scale is not symmetric around
// zero (unpleasant side steps by 0.25 from -1, pleasant side is 0.25, 0.5, 1.0); do not
// even it out without product sign-off.
var valenceScores = map[ValenceLevel]float64{
	VeryUnpleasant:     -1.0,
	Unpleasant:         -0.75,
	SlightlyUnpleasant: -0.5,
	Neutral:            0.0,
	SlightlyPleasant:   0.25,
	Pleasant:           0.5,
	VeryPleasant:       1.0,
}

var valenceIndex = buildIndex(valenceTable)

// AllValenceLevels returns every level from most negative to most positive.
func AllValenceLevels() []ValenceLevel {
	return []ValenceLevel{
		VeryUnpleasant, Unpleasant, SlightlyUnpleasant, Neutral,
		SlightlyPleasant, Pleasant, VeryPleasant,
	}
}

// Valid reports whether v is one of the seven defined levels.
func (v ValenceLevel) Valid() bool {
	return v >= VeryUnpleasant && v <= VeryPleasant
}

// Score maps the level onto [-1, 1]. ok is false for values outside the enumeration.
func (v ValenceLevel) Score() (score float64, ok bool) {
	score, ok = valenceScores[v]
	return score, ok
}

// Key returns the stable snake_case identifier used in storage and JSON.
func (v ValenceLevel) Key() string {
	if !v.Valid() {
		return ""
	}
	return valenceTable[v].key
}

func (v ValenceLevel) String() string {
	if !v.Valid() {
		return fmt.Sprintf("ValenceLevel(%d)", int(v))
	}
	return valenceTable[v].display
}

func (v ValenceLevel) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownValenceLevel, int(v))
	}
	return []byte(v.Key()), nil
}

func (v *ValenceLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseValenceLevel(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseValenceLevel resolves a key ("slightly_pleasant") or display name
// ("Slightly Pleasant") to its level.
func ParseValenceLevel(s string) (ValenceLevel, error) {
	raw, ok := valenceIndex[normalizeKey(s)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownValenceLevel, s)
	}
	return ValenceLevel(raw), nil
}
