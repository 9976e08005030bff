package resolve

import "github.com/elearn-app/elearn/internal/backend"

// ProgressCache maps a course id to its completion ratio in [0, 1].
type ProgressCache map[string]float64

// BuildProgressCache aggregates records into completed/total chapter
// ratios, so a ratio of exactly 1 means every chapter is complete. Records
// without chapters carry no progress and are skipped.
func BuildProgressCache(records []backend.ProgressRecord) ProgressCache {
	cache := make(ProgressCache, len(records))
	for _, r := range records {
		if len(r.Chapters) == 0 {
			continue
		}
		done := 0
		for _, c := range r.Chapters {
			if c.IsCompleted {
				done++
			}
		}
		cache[r.CourseID] = float64(done) / float64(len(r.Chapters))
	}
	return cache
}

// Completion resolves whether courseID is complete. The cache wins when it
// has the course; otherwise every chapter of the course's record must be
// complete. known is false when neither source has progress for the course.
func Completion(courseID string, cache ProgressCache, records []backend.ProgressRecord) (complete, known bool) {
	if v, ok := cache[courseID]; ok {
		return v == 1, true
	}
	for _, r := range records {
		if r.CourseID != courseID || len(r.Chapters) == 0 {
			continue
		}
		for _, c := range r.Chapters {
			if !c.IsCompleted {
				return false, true
			}
		}
		return true, true
	}
	return false, false
}

// PartitionCourses splits courses into the Complete and Incomplete tabs,
// keeping their order. Courses with no progress are in neither.
func PartitionCourses(courses []backend.Course, cache ProgressCache, records []backend.ProgressRecord) (complete, incomplete []backend.Course) {
	complete = []backend.Course{}
	incomplete = []backend.Course{}
	for _, c := range courses {
		done, known := Completion(c.ID, cache, records)
		switch {
		case !known:
		case done:
			complete = append(complete, c)
		default:
			incomplete = append(incomplete, c)
		}
	}
	return complete, incomplete
}
