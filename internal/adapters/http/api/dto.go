package api

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/skill"
)

// skillsPayload accepts either a list of "name[:level]" tags or an object
// mapping names to levels.
type skillsPayload struct {
	tags   []string
	levels map[string]skill.Level
}

func (s *skillsPayload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '[':
		return json.Unmarshal(data, &s.tags)
	case len(data) > 0 && data[0] == '{':
		return json.Unmarshal(data, &s.levels)
	}
	return errors.New("skills must be a list of tags or an object of levels")
}

// profilePayload is a learner profile as sent by clients.
type profilePayload struct {
	Skills   skillsPayload `json:"skills"`
	Years    int           `json:"years"`
	GoalRole string        `json:"goal_role"`

	// Flat form preferences.
	DurationLimit        *int   `json:"duration_limit,omitempty"`
	DifficultyPreference string `json:"difficulty_preference,omitempty"`
}

// prefsPayload holds the preferences of the nested form.
type prefsPayload struct {
	MaxDurationWeeks *int   `json:"max_duration_weeks,omitempty"`
	Difficulty       string `json:"difficulty,omitempty"`
	// Notes is free text. It is only logged, with PII redacted.
	Notes string `json:"notes,omitempty"`
}

// adviseRequest mirrors the OpenAPI schema for POST /advise. It accepts
// {"profile": {...}, "prefs": {...}} as well as a flat profile.
type adviseRequest struct {
	profilePayload
	Profile *profilePayload `json:"profile,omitempty"`
	Prefs   *prefsPayload   `json:"prefs,omitempty"`
}

type batchRequest struct {
	Profiles []adviseRequest `json:"profiles"`
}

// toProfile resolves the request into a domain profile. Skills given without
// a rating take unrated.
func (r adviseRequest) toProfile(unrated skill.Level) (model.Profile, error) {
	src := r.profilePayload
	if r.Profile != nil {
		src = *r.Profile
	}

	skills, err := src.Skills.resolve(unrated)
	if err != nil {
		return model.Profile{}, err
	}

	weeks := src.DurationLimit
	diff := src.DifficultyPreference
	if r.Prefs != nil {
		if r.Prefs.MaxDurationWeeks != nil {
			weeks = r.Prefs.MaxDurationWeeks
		}
		if r.Prefs.Difficulty != "" {
			diff = r.Prefs.Difficulty
		}
	}

	prefs := model.Preferences{}
	if weeks != nil {
		prefs.MaxDurationWeeks = *weeks
	}
	if prefs.Difficulty, err = skill.ParseDifficulty(diff); err != nil {
		return model.Profile{}, err
	}

	return model.Profile{
		Skills:      skills,
		Years:       src.Years,
		GoalRole:    src.GoalRole,
		Preferences: prefs,
	}, nil
}

func (r adviseRequest) notes() string {
	if r.Prefs == nil {
		return ""
	}
	return r.Prefs.Notes
}

// resolve merges tags and levels. A skill named twice keeps its highest level.
func (s skillsPayload) resolve(unrated skill.Level) (map[string]skill.Level, error) {
	out := make(map[string]skill.Level, len(s.tags)+len(s.levels))
	put := func(name string, lvl skill.Level) {
		if cur, ok := out[name]; !ok || lvl > cur {
			out[name] = lvl
		}
	}
	for _, tag := range s.tags {
		name, lvl, err := skill.ParseTag(tag, unrated)
		if err != nil {
			return nil, err
		}
		put(name, lvl)
	}
	for name, lvl := range s.levels {
		if !lvl.Valid() {
			return nil, fmt.Errorf("skill %q: %w", name, skill.ErrUnknownLevel)
		}
		put(name, lvl)
	}
	return out, nil
}
