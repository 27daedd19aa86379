// Package skill holds the shared proficiency vocabulary: ordinal skill levels,
// qualitative gap sizes and course difficulties.
package skill

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is an ordinal proficiency. Comparisons use the ordinal value.
type Level int

// Proficiency levels. Absence of a skill in a profile means None.
const (
	None Level = iota
	Basic
	Intermediate
	Advanced
)

// MaxLevel is the highest valid ordinal.
const MaxLevel = Advanced

var levelNames = [...]string{"None", "Basic", "Intermediate", "Advanced"}

// String returns the level name, e.g. "Intermediate".
func (l Level) String() string {
	if !l.Valid() {
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
	return levelNames[l]
}

// Valid reports whether l lies in None..Advanced.
func (l Level) Valid() bool {
	return l >= None && l <= MaxLevel
}

// ParseLevel accepts a level name ("advanced"), its short tag ("a"), the
// "beginner" alias for Basic, or an ordinal "0".."3". Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "0":
		return None, nil
	case "basic", "beginner", "b", "1":
		return Basic, nil
	case "intermediate", "i", "2":
		return Intermediate, nil
	case "advanced", "a", "3":
		return Advanced, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// LevelFromNumber converts a numeric rating. Fractional, non-finite and
// out-of-range ratings are rejected.
func LevelFromNumber(f float64) (Level, error) {
	if f != f || f < float64(None) || f > float64(MaxLevel) || f != float64(int(f)) {
		return None, fmt.Errorf("%w: %v", ErrUnknownLevel, f)
	}
	return Level(int(f)), nil
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes any form accepted by ParseLevel.
func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// UnmarshalJSON accepts both a JSON number (0..3) and a JSON string.
func (l *Level) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*l = None
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrUnknownLevel, s)
		}
		return l.UnmarshalText([]byte(unq))
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownLevel, s)
	}
	v, err := LevelFromNumber(f)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// GapSize buckets a numeric gap for presentation.
type GapSize int

// Gap buckets: gap 0, 1, 2 and 3 respectively.
const (
	GapNone GapSize = iota
	GapSmall
	GapMedium
	GapLarge
)

var gapNames = [...]string{"None", "Small", "Medium", "Large"}

// BucketGap maps a gap magnitude onto its bucket. Magnitudes above 3 cannot
// occur with valid levels and are treated as Large.
func BucketGap(magnitude int) GapSize {
	switch {
	case magnitude <= 0:
		return GapNone
	case magnitude >= int(GapLarge):
		return GapLarge
	default:
		return GapSize(magnitude)
	}
}

func (g GapSize) String() string {
	if g < GapNone || g > GapLarge {
		return "GapSize(" + strconv.Itoa(int(g)) + ")"
	}
	return gapNames[g]
}

// MarshalText encodes the bucket by name.
func (g GapSize) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// Difficulty is a course difficulty or a user's preferred difficulty.
type Difficulty string

// Course difficulties. DifficultyAny is only meaningful as a preference.
const (
	Beginner           Difficulty = "Beginner"
	IntermediateCourse Difficulty = "Intermediate"
	AdvancedCourse     Difficulty = "Advanced"
	DifficultyAny      Difficulty = "any"
	difficultyUnset    Difficulty = ""
)

// ParseDifficulty normalizes a difficulty name. An empty string yields DifficultyAny.
func ParseDifficulty(s string) (Difficulty, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "any", "all", "none", "no preference":
		return DifficultyAny, nil
	case "beginner", "basic":
		return Beginner, nil
	case "intermediate":
		return IntermediateCourse, nil
	case "advanced":
		return AdvancedCourse, nil
	}
	return difficultyUnset, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// IsAny reports whether d expresses no preference.
func (d Difficulty) IsAny() bool {
	return d == DifficultyAny || d == difficultyUnset
}

// IsCourseDifficulty reports whether d is valid on a catalog course.
func (d Difficulty) IsCourseDifficulty() bool {
	return d == Beginner || d == IntermediateCourse || d == AdvancedCourse
}

// Opposite reports whether a and b sit at opposite extremes (Beginner vs Advanced).
func Opposite(a, b Difficulty) bool {
	return (a == Beginner && b == AdvancedCourse) || (a == AdvancedCourse && b == Beginner)
}
