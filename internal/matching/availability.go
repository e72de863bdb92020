package matching

import (
	"sort"
	"strings"

	"github.com/noah-isme/skill-exchange-api/internal/models"
)

// IntersectAvailability returns the days and time slots present in both
// availability sets. The source data keeps days and slots as independent
// sets, so the two intersections are computed separately and combined by the
// caller as advisory information. An empty result is valid: it signals no
// confirmed common time, never an excluded match.
func IntersectAvailability(a, b models.Availability) models.AvailabilityOverlap {
	return models.AvailabilityOverlap{
		Days:      intersectSets(a.Days, b.Days, func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }),
		TimeSlots: intersectSets(a.TimeSlots, b.TimeSlots, strings.TrimSpace),
	}
}

func intersectSets(left, right []string, canon func(string) string) []string {
	if len(left) == 0 || len(right) == 0 {
		return []string{}
	}

	rightSet := make(map[string]struct{}, len(right))
	for _, item := range right {
		key := canon(item)
		if key != "" {
			rightSet[key] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	shared := make([]string, 0)
	for _, item := range left {
		key := canon(item)
		if key == "" {
			continue
		}
		if _, ok := rightSet[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		shared = append(shared, key)
	}

	sort.Strings(shared)
	return shared
}
