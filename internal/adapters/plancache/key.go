package plancache

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/okian/upskill/internal/domain/model"
)

// Key identifies a profile for caching. Plan text echoes the goal role and
// skill names as given, so the key keeps their spelling.
type Key struct {
	hash  uint64
	canon string
}

// Hash returns the xxhash of the canonical profile.
func (k Key) Hash() uint64 {
	return k.hash
}

// String returns the hash in hex.
func (k Key) String() string {
	return strconv.FormatUint(k.hash, 16)
}

// KeyFor derives the cache key of a profile. Map iteration order does not
// affect the result.
func KeyFor(p model.Profile) Key {
	names := make([]string, 0, len(p.Skills))
	for name := range p.Skills {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(strings.TrimSpace(p.GoalRole))
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(p.Years))
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(p.Preferences.MaxDurationWeeks))
	b.WriteByte(0)
	b.WriteString(string(p.Preferences.Difficulty))
	for _, n := range names {
		b.WriteByte(0)
		b.WriteString(n)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(int(p.Skills[n])))
	}

	canon := b.String()
	return Key{hash: xxhash.Sum64String(canon), canon: canon}
}
