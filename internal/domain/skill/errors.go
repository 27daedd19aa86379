package skill

import "errors"

var (
	// ErrUnknownLevel is returned when a skill level cannot be parsed.
	ErrUnknownLevel = errors.New("unknown skill level")
	// ErrUnknownDifficulty is returned when a difficulty cannot be parsed.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	// ErrEmptySkill is returned when a skill tag has no name.
	ErrEmptySkill = errors.New("empty skill name")
)
