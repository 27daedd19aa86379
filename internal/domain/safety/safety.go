// Package safety screens free text for prompt-injection phrases and redacts
// personal data before it reaches logs.
package safety

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/okian/upskill/internal/domain/model"
)

// ErrUnsafeInput is returned when input carries an injection phrase.
var ErrUnsafeInput = errors.New("unsafe input")

const (
	redactedEmail = "[redacted-email]"
	redactedPhone = "[redacted-phone]"

	minPhoneDigits = 10
	maxPhoneDigits = 15
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d(?:[\s-]?\d){9,14}`)

	injectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ignore previous`),
		regexp.MustCompile(`(?i)system prompt`),
		regexp.MustCompile(`(?i)act as`),
		regexp.MustCompile(`(?i)tool_call`),
		regexp.MustCompile(`(?i)BEGIN_INSTRUCTIONS`),
		regexp.MustCompile(`(?i)jailbreak`),
	}
)

// DetectInjection reports whether text contains a known injection phrase.
func DetectInjection(text string) bool {
	for _, p := range injectionPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// RedactPII masks e-mail addresses and phone numbers.
func RedactPII(text string) string {
	text = emailPattern.ReplaceAllString(text, redactedEmail)

	locs := phonePattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	out := make([]byte, 0, len(text))
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		// A phone number must not be part of a longer digit run.
		if (start > 0 && isDigit(text[start-1])) || (end < len(text) && isDigit(text[end])) {
			continue
		}
		if n := countDigits(text[start:end]); n < minPhoneDigits || n > maxPhoneDigits {
			continue
		}
		out = append(out, text[last:start]...)
		out = append(out, redactedPhone...)
		last = end
	}
	out = append(out, text[last:]...)
	return string(out)
}

// CheckProfile rejects a profile whose goal role or skill names carry an
// injection phrase. The error names the offending field.
func CheckProfile(p model.Profile) error {
	if DetectInjection(p.GoalRole) {
		return fmt.Errorf("%w: goal_role", ErrUnsafeInput)
	}
	names := make([]string, 0, len(p.Skills))
	for name := range p.Skills {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if DetectInjection(name) {
			return fmt.Errorf("%w: skills[%s]", ErrUnsafeInput, RedactPII(name))
		}
	}
	return nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			n++
		}
	}
	return n
}
