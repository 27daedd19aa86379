package advisecheck

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/okian/upskill/internal/domain/quality"
	"github.com/okian/upskill/internal/domain/types"
	"github.com/okian/upskill/pkg/logger"
)

// VerifyPlan checks the structural guarantees every plan must hold.
func VerifyPlan(plan types.PlanView, courseCap int) error {
	var errs []error

	if len(plan.Recommendations) > courseCap {
		errs = append(errs, fmt.Errorf("%d recommendations exceed cap %d", len(plan.Recommendations), courseCap))
	}
	if plan.CoverageScore < 0 || plan.CoverageScore > PercentageMultiplier {
		errs = append(errs, fmt.Errorf("coverage %d outside 0..100", plan.CoverageScore))
	}
	if plan.DiversityScore < 0 || plan.DiversityScore > 1 {
		errs = append(errs, fmt.Errorf("diversity %.3f outside 0..1", plan.DiversityScore))
	}
	if err := verifyTimeline(plan); err != nil {
		errs = append(errs, err)
	}
	if err := verifyRecommendations(plan); err != nil {
		errs = append(errs, err)
	}
	for _, g := range plan.SkillGaps {
		if g.Magnitude < 0 {
			errs = append(errs, fmt.Errorf("gap %q has negative magnitude %d", g.Skill, g.Magnitude))
		}
	}
	if err := verifyNotes(plan); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// verifyTimeline checks phases pair with recommendations, start at week 1,
// leave no gaps and add up to the total.
func verifyTimeline(plan types.PlanView) error {
	phases := plan.Timeline.Phases
	if len(phases) != len(plan.Recommendations) {
		return fmt.Errorf("timeline has %d phases for %d recommendations", len(phases), len(plan.Recommendations))
	}

	next := 1
	for i, ph := range phases {
		course := plan.Recommendations[i].Course
		if ph.CourseID != course.CourseID {
			return fmt.Errorf("phase %d is %q, recommendation is %q", i, ph.CourseID, course.CourseID)
		}
		if ph.StartWeek != next {
			return fmt.Errorf("phase %d starts at week %d, want %d", i, ph.StartWeek, next)
		}
		if ph.EndWeek-ph.StartWeek+1 != course.DurationWeeks {
			return fmt.Errorf("phase %d spans %d weeks, course takes %d", i, ph.EndWeek-ph.StartWeek+1, course.DurationWeeks)
		}
		next = ph.EndWeek + 1
	}

	if plan.Timeline.TotalWeeks != next-1 {
		return fmt.Errorf("total weeks %d, phases end at %d", plan.Timeline.TotalWeeks, next-1)
	}
	return nil
}

func verifyRecommendations(plan types.PlanView) error {
	seen := make(map[string]struct{}, len(plan.Recommendations))
	for _, rec := range plan.Recommendations {
		if _, dup := seen[rec.Course.CourseID]; dup {
			return fmt.Errorf("course %q recommended twice", rec.Course.CourseID)
		}
		seen[rec.Course.CourseID] = struct{}{}
		if rec.Why == "" {
			return fmt.Errorf("course %q has no justification", rec.Course.CourseID)
		}
	}
	return nil
}

func verifyNotes(plan types.PlanView) error {
	if plan.Generic {
		if len(plan.Notes) == 0 || plan.Notes[0] != quality.GenericNote {
			return errors.New("generic plan does not lead with the generic note")
		}
		return nil
	}
	for _, n := range plan.Notes {
		if n == quality.GenericNote {
			return errors.New("targeted plan carries the generic note")
		}
	}
	return nil
}

// checkProfile submits a profile SubmissionsPerCase times and verifies the
// first plan and that every later body is identical to it.
func checkProfile(ctx context.Context, c *Client, p Profile, courseCap int, verbose bool) Outcome {
	out := Outcome{ProfileID: p.ID}

	var first []byte
	for i := 0; i < SubmissionsPerCase; i++ {
		body, err := c.Post(ctx, "/advise", p)
		if err != nil {
			out.Status, out.Err = StatusFailed, err
			return out
		}
		if i == 0 {
			first = body
			continue
		}
		if !bytes.Equal(first, body) {
			out.Status = StatusNondeterministic
			out.Err = fmt.Errorf("submission %d differs from the first", i+1)
			return out
		}
	}

	var plan types.PlanView
	if err := unmarshalJSON(first, &plan); err != nil {
		out.Status, out.Err = StatusFailed, fmt.Errorf("failed to decode plan: %w", err)
		return out
	}
	out.Generic = plan.Generic
	out.Coverage = plan.CoverageScore

	if err := VerifyPlan(plan, courseCap); err != nil {
		out.Status, out.Err = StatusInvalid, err
		return out
	}
	if verbose {
		logger.Get().Debug(ctx, "plan verified",
			logger.String("profile", p.ID),
			logger.String("role", p.GoalRole),
			logger.Int("recommendations", len(plan.Recommendations)),
			logger.Int("coverage", plan.CoverageScore),
			logger.Int("totalWeeks", plan.Timeline.TotalWeeks),
			logger.Bool("generic", plan.Generic))
	}
	out.Status = StatusOK
	return out
}

// tally folds outcomes into stats and logs every failure.
func tally(ctx context.Context, outcomes []Outcome, stats *Stats) error {
	for _, o := range outcomes {
		stats.Submitted++
		switch o.Status {
		case StatusOK:
			stats.Successful++
			if o.Generic {
				stats.Generic++
			}
			continue
		case StatusInvalid:
			stats.Invalid++
		case StatusNondeterministic:
			stats.Nondeterministic++
		default:
			stats.Failed++
		}
		logger.Get().Warn(ctx, "profile check failed",
			logger.String("profile", o.ProfileID),
			logger.String("status", o.Status),
			logger.Error(o.Err))
	}

	if bad := stats.Submitted - stats.Successful; bad > 0 {
		return fmt.Errorf("%w: %d of %d profiles", ErrVerificationFailed, bad, stats.Submitted)
	}
	return nil
}
