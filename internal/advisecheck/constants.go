package advisecheck

import "time"

// Submission constants.
const (
	DefaultCourseCap   = 3
	SubmissionsPerCase = 2
	BreakerFailures    = 5
	BreakerOpenTimeout = 10 * time.Second
	maxErrorBody       = 256
)

// Generator constants.
const (
	maxYears        = 11
	minDuration     = 4
	durationSpread  = 17
	unknownRoleName = "Quantum Gardener"
)

// Runner constants.
const (
	PercentageMultiplier = 100
	directoryPermission  = 0750
	filePermission       = 0600
)
