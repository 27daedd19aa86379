// Package advisecheck drives a running advisor service with generated
// profiles and verifies the plans it returns.
package advisecheck

import (
	"time"

	"github.com/okian/upskill/internal/domain/types"
)

// Config holds configuration for a check run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumProfiles int           // Number of profiles to generate
	Workers     int           // Number of concurrent submitters
	RPS         float64       // Request rate limit, zero means unlimited
	Timeout     time.Duration // HTTP request timeout
	InputFile   string        // Profiles to submit instead of generating
	OutputFile  string        // Where the submitted profiles are saved
	LogFile     string        // Log file for check output
	Verbose     bool          // Log every plan
}

// Profile is one /advise request in the flat frontend shape.
type Profile struct {
	ID                   string   `json:"id"`
	Skills               []string `json:"skills"`
	Years                int      `json:"years"`
	GoalRole             string   `json:"goal_role"`
	DurationLimit        int      `json:"duration_limit,omitempty"`
	DifficultyPreference string   `json:"difficulty_preference,omitempty"`
}

// Outcome is the verdict on one profile.
type Outcome struct {
	ProfileID string
	Status    string
	Generic   bool
	Coverage  int
	Err       error
}

// Outcome statuses.
const (
	StatusOK               = "ok"
	StatusFailed           = "failed"
	StatusInvalid          = "invalid"
	StatusNondeterministic = "nondeterministic"
)

// Stats holds run statistics.
type Stats struct {
	ProfilesGenerated int
	Submitted         int
	Successful        int
	Failed            int
	Invalid           int
	Nondeterministic  int
	Generic           int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}

type rolesResponse struct {
	Roles []types.RoleView `json:"roles"`
}

type statsResponse struct {
	CourseCap int `json:"course_cap"`
}
