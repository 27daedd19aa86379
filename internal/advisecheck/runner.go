package advisecheck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/goccy/go-json"
	"github.com/okian/upskill/internal/domain/types"
	"github.com/okian/upskill/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Run executes a complete check and returns the collected statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting advise check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("profiles", config.NumProfiles),
		logger.Int("workers", config.Workers),
		logger.Float64("rps", config.RPS),
		logger.Duration("timeout", config.Timeout),
		logger.String("inputFile", config.InputFile),
		logger.Bool("verbose", config.Verbose))

	client := NewClient(config.BaseURL, config.Timeout, config.RPS)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Discover roles and the course cap
	roles, courseCap, err := discover(ctx, client)
	if err != nil {
		return stats, fmt.Errorf("discovery failed: %w", err)
	}

	// Step 3: Load or generate profiles
	var profiles []Profile
	if config.InputFile != "" {
		profiles, err = loadProfiles(ctx, config.InputFile, stats)
	} else {
		profiles, err = generateProfiles(ctx, config.NumProfiles, roles, stats)
	}
	if err != nil {
		return stats, fmt.Errorf("profile preparation failed: %w", err)
	}
	if len(profiles) == 0 {
		return stats, ErrNoProfiles
	}

	// Step 4: Submit and verify concurrently
	outcomes, err := submitProfiles(ctx, client, config, profiles, courseCap)
	if err != nil {
		return stats, fmt.Errorf("profile submission failed: %w", err)
	}
	verifyErr := tally(ctx, outcomes, stats)

	// Step 5: Save profiles for replay
	if config.InputFile == "" {
		if err := saveProfilesToFile(ctx, config.OutputFile, profiles); err != nil {
			logger.Get().Warn(ctx, "failed to save profiles to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats, client.State())

	if verifyErr != nil {
		return stats, verifyErr
	}
	logger.Get().Info(ctx, "check completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, c *Client) error {
	logger.Get().Info(ctx, "checking service health")
	if _, err := c.Get(ctx, "/healthz"); err != nil {
		return errors.Join(ErrUnhealthy, err)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

func discover(ctx context.Context, c *Client) ([]types.RoleView, int, error) {
	var roles rolesResponse
	if err := c.GetJSON(ctx, "/roles", &roles); err != nil {
		return nil, 0, fmt.Errorf("failed to list roles: %w", err)
	}

	courseCap := DefaultCourseCap
	var st statsResponse
	if err := c.GetJSON(ctx, "/stats", &st); err != nil {
		logger.Get().Warn(ctx, "stats unavailable, assuming default course cap", logger.Error(err))
	} else if st.CourseCap > 0 {
		courseCap = st.CourseCap
	}

	logger.Get().Info(ctx, "discovered service",
		logger.Int("roles", len(roles.Roles)),
		logger.Int("courseCap", courseCap))
	return roles.Roles, courseCap, nil
}

// submitProfiles checks every profile with at most config.Workers in flight.
// Outcomes keep the profile order.
func submitProfiles(ctx context.Context, c *Client, config *Config, profiles []Profile, courseCap int) ([]Outcome, error) {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger.Get().Info(ctx, "submitting profiles",
		logger.Int("count", len(profiles)),
		logger.Int("workers", workers))

	outcomes := make([]Outcome, len(profiles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range profiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = checkProfile(gctx, c, p, courseCap, config.Verbose)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// saveProfilesToFile writes profiles as an indented JSON array. An empty
// filename gets a timestamped default.
func saveProfilesToFile(ctx context.Context, filename string, profiles []Profile) error {
	if filename == "" {
		filename = "generated_profiles_" + time.Now().Format("20060102_150405") + ".json"
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "profiles saved to file", logger.String("filename", filename))
	return nil
}

func readFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.Clean(path))
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats, breakerState string) {
	var successRate, profilesPerSecond float64
	if stats.Submitted > 0 {
		successRate = float64(stats.Successful) / float64(stats.Submitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		profilesPerSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("profilesGenerated", stats.ProfilesGenerated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("generic", stats.Generic),
		logger.Int("failed", stats.Failed),
		logger.Int("invalid", stats.Invalid),
		logger.Int("nondeterministic", stats.Nondeterministic),
		logger.String("breaker", breakerState),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("profilesPerSecond", profilesPerSecond))
}
