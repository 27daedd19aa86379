package skill

import (
	"fmt"
	"strings"
)

const tagSeparator = ":"

// ParseTag splits a "name:level" tag such as "python:b". A bare name takes
// the unrated level. Names are trimmed but keep their case.
func ParseTag(tag string, unrated Level) (string, Level, error) {
	name, rating, found := strings.Cut(tag, tagSeparator)
	name = strings.TrimSpace(name)
	if name == "" {
		return "", None, fmt.Errorf("%w: %q", ErrEmptySkill, tag)
	}
	if !found {
		return name, unrated, nil
	}
	lvl, err := ParseLevel(rating)
	if err != nil {
		return "", None, fmt.Errorf("skill %q: %w", name, err)
	}
	return name, lvl, nil
}
