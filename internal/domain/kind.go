package domain

import (
	"fmt"
	"time"
)

// Kind discriminates how much of a mood capture the user went through.
type Kind int

const (
	// MomentaryEmotion is a quick point-in-time capture; labels and associations are optional.
	MomentaryEmotion Kind = iota + 1
	// DailyMood summarizes a whole day; labels and associations are optional.
	DailyMood
	// FullStateOfMind requires at least one label and one association.
	FullStateOfMind
)

var kindTable = []vocabEntry{
	{},
	{"momentary_emotion", "Momentary Emotion"},
	{"daily_mood", "Daily Mood"},
	{"state_of_mind", "State of Mind"},
}

var kindIndex = buildIndex(kindTable)

// momentarySampleWindow is the span a momentary emotion sample covers.
const momentarySampleWindow = 5 * time.Minute

func AllKinds() []Kind {
	return []Kind{MomentaryEmotion, DailyMood, FullStateOfMind}
}

func (k Kind) Valid() bool {
	return k >= MomentaryEmotion && k <= FullStateOfMind
}

// RequiresSelection reports whether records of this kind need non-empty labels and associations.
func (k Kind) RequiresSelection() bool {
	return k == FullStateOfMind
}

// SampleWindow is the duration between a record's timestamp and its sample end.
func (k Kind) SampleWindow() time.Duration {
	if k == MomentaryEmotion {
		return momentarySampleWindow
	}
	return 0
}

func (k Kind) Key() string {
	if !k.Valid() {
		return ""
	}
	return kindTable[k].key
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindTable[k].display
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.Key()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func ParseKind(s string) (Kind, error) {
	raw, ok := kindIndex[normalizeKey(s)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return Kind(raw), nil
}

// Scope is the authorization category a record is written under.
type Scope string

const (
	ScopeMindfulSession Scope = "mindful_session"
	ScopeStateOfMind    Scope = "state_of_mind"
)

// AllScopes lists every scope an authorization can be requested for.
func AllScopes() []Scope {
	return []Scope{ScopeMindfulSession, ScopeStateOfMind}
}

// ScopeFor returns the category records of kind k are stored under.
// Momentary emotions go to mindful sessions, everything else to state of mind.
func ScopeFor(k Kind) Scope {
	if k == MomentaryEmotion {
		return ScopeMindfulSession
	}
	return ScopeStateOfMind
}

func ParseScope(s string) (Scope, error) {
	key := Scope(normalizeKey(s))
	for _, scope := range AllScopes() {
		if scope == key {
			return scope, nil
		}
	}
	return "", fmt.Errorf("unknown scope %q", s)
}
