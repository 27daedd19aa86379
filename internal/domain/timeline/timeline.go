// Package timeline schedules plan courses back to back.
package timeline

import "github.com/okian/upskill/internal/domain/model"

// Build walks the items once in order. The first course starts in week 1 and
// each following course starts the week after the previous one ends.
func Build(items []model.PlanItem) model.Timeline {
	segments := make([]model.Segment, 0, len(items))
	cursor := 0
	for _, it := range items {
		start := cursor + 1
		cursor += it.Course.DurationWeeks
		segments = append(segments, model.Segment{
			CourseID: it.Course.ID,
			Start:    start,
			End:      cursor,
		})
	}
	return model.Timeline{Segments: segments, TotalWeeks: cursor}
}

// Contiguous reports whether segments start at week 1 and never gap or overlap.
func Contiguous(t model.Timeline) bool {
	next := 1
	for _, s := range t.Segments {
		if s.Start != next || s.End < s.Start {
			return false
		}
		next = s.End + 1
	}
	return t.TotalWeeks == next-1
}
