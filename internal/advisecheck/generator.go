package advisecheck

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"

	"github.com/google/uuid"
	"github.com/okian/upskill/internal/domain/types"
	"github.com/okian/upskill/pkg/logger"
)

var (
	levelTags    = [...]string{"", ":b", ":i", ":a"}
	difficulties = [...]string{"", "any", "Beginner", "Intermediate", "Advanced"}
	extraSkills  = [...]string{"Git", "Linux", "Communication", "Docker"}
)

// randomInt returns a uniform value in [0, n) using crypto/rand.
func randomInt(n int) int {
	if n <= 1 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// generateProfiles creates n profiles spread over the known roles plus one
// unknown role, so both the targeted and the generic paths are exercised.
func generateProfiles(ctx context.Context, n int, roles []types.RoleView, stats *Stats) ([]Profile, error) {
	logger.Get().Info(ctx, "generating profiles", logger.Int("numProfiles", n), logger.Int("roles", len(roles)))

	profiles := make([]Profile, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during profile generation: %w", err)
		}
		profiles = append(profiles, generateSingleProfile(roles))
	}

	stats.ProfilesGenerated = len(profiles)
	logger.Get().Info(ctx, "generated profiles successfully", logger.Int("count", len(profiles)))
	return profiles, nil
}

func generateSingleProfile(roles []types.RoleView) Profile {
	p := Profile{
		ID:                   uuid.New().String(),
		Skills:               []string{},
		Years:                randomInt(maxYears),
		DifficultyPreference: difficulties[randomInt(len(difficulties))],
	}
	if randomInt(3) > 0 {
		p.DurationLimit = minDuration + randomInt(durationSpread)
	}

	pick := randomInt(len(roles) + 1)
	if pick == len(roles) {
		p.GoalRole = unknownRoleName
	} else {
		role := roles[pick]
		p.GoalRole = role.Role
		names := make([]string, 0, len(role.RequiredSkills))
		for name := range role.RequiredSkills {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			// Roughly one skill in four is left out of the profile.
			if randomInt(4) == 0 {
				continue
			}
			p.Skills = append(p.Skills, name+levelTags[randomInt(len(levelTags))])
		}
	}
	if randomInt(2) == 0 {
		p.Skills = append(p.Skills, extraSkills[randomInt(len(extraSkills))])
	}
	return p
}

// loadProfiles reads profiles from a JSON array file.
func loadProfiles(ctx context.Context, path string, stats *Stats) ([]Profile, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	var profiles []Profile
	if err := unmarshalJSON(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	for i := range profiles {
		if profiles[i].ID == "" {
			profiles[i].ID = uuid.New().String()
		}
	}
	stats.ProfilesGenerated = len(profiles)
	logger.Get().Info(ctx, "loaded profiles", logger.String("file", path), logger.Int("count", len(profiles)))
	return profiles, nil
}
