package mastery

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// State is the discrete summary label of a concept's learning progress.
// The linear order runs Unseen < Exposed < Fragile < Developing < Solid <
// Mastered. Misconceived sits outside that order: it flags a persistently
// mis-learned concept and dominates severity regardless of stability.
type State int

const (
	Unseen State = iota
	Exposed
	Fragile
	Developing
	Solid
	Mastered
	Misconceived
)

// Meta is the immutable presentation metadata attached to each state. Color
// tokens are a presentation concern and are passed through untouched; the
// progress weight is used only for aggregation.
type Meta struct {
	Label      string `json:"label"`
	ColorToken string `json:"color_token"`
	Progress   int    `json:"progress_percent"` // 0..100
}

var stateMeta = [...]Meta{
	Unseen:       {Label: "Unseen", ColorToken: "state-unseen", Progress: 0},
	Exposed:      {Label: "Exposed", ColorToken: "state-exposed", Progress: 10},
	Fragile:      {Label: "Fragile", ColorToken: "state-fragile", Progress: 25},
	Developing:   {Label: "Developing", ColorToken: "state-developing", Progress: 50},
	Solid:        {Label: "Solid", ColorToken: "state-solid", Progress: 75},
	Mastered:     {Label: "Mastered", ColorToken: "state-mastered", Progress: 100},
	Misconceived: {Label: "Misconceived", ColorToken: "state-misconceived", Progress: 5},
}

var stateNames = [...]string{
	Unseen:       "unseen",
	Exposed:      "exposed",
	Fragile:      "fragile",
	Developing:   "developing",
	Solid:        "solid",
	Mastered:     "mastered",
	Misconceived: "misconceived",
}

var stateByName = map[string]State{
	"unseen":       Unseen,
	"exposed":      Exposed,
	"fragile":      Fragile,
	"developing":   Developing,
	"solid":        Solid,
	"mastered":     Mastered,
	"misconceived": Misconceived,
}

// linearStates lists the ranked states in ascending competence order.
var linearStates = [...]State{Unseen, Exposed, Fragile, Developing, Solid, Mastered}

var (
	_ fmt.Stringer             = State(0)
	_ encoding.TextMarshaler   = State(0)
	_ encoding.TextUnmarshaler = (*State)(nil)
)

// IsValid reports whether s is a defined state.
func (s State) IsValid() bool {
	return s >= Unseen && s <= Misconceived
}

// Linear reports whether s participates in the competence order.
func (s State) Linear() bool {
	return s >= Unseen && s <= Mastered
}

// Rank returns the position of a linear state in the competence order.
// Misconceived has no rank; it compares below everything by convention.
func (s State) Rank() int {
	if s.Linear() {
		return int(s)
	}
	return -1
}

// Meta returns the display metadata for the state.
func (s State) Meta() Meta {
	if s.IsValid() {
		return stateMeta[s]
	}
	return Meta{}
}

func (s State) String() string {
	if s.IsValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState converts a stored name back into a State.
func ParseState(name string) (State, error) {
	s, ok := stateByName[name]
	if !ok {
		return 0, fmt.Errorf("mastery: unknown state %q", name)
	}
	return s, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("mastery: unknown state %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	v, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalJSON implements json.Marshaler. States serialize as JSON strings.
func (s State) MarshalJSON() ([]byte, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	return s.UnmarshalText([]byte(name))
}
