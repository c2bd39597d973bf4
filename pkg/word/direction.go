package word

import "strings"

// Direction is the order in which a rule visits start positions.
type Direction int

const (
	Rightward Direction = iota
	Leftward
)

func (d Direction) String() string {
	if d == Leftward {
		return "leftward"
	}
	return "rightward"
}

// ParseDirection accepts "rightward"/"right" and "leftward"/"left". An
// empty string is rightward.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rightward", "right":
		return Rightward, true
	case "leftward", "left":
		return Leftward, true
	}
	return Rightward, false
}
