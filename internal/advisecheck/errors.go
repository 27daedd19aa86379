package advisecheck

import "errors"

var (
	// ErrNoProfiles is returned when there is nothing to submit.
	ErrNoProfiles = errors.New("no profiles")
	// ErrVerificationFailed is returned when any plan fails a check.
	ErrVerificationFailed = errors.New("plan verification failed")
	// ErrUnhealthy is returned when the health endpoint does not answer 200.
	ErrUnhealthy = errors.New("service unhealthy")
)
