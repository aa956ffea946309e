package catalog

import (
	"fmt"
	"strings"
)

// validateTracks performs the structural checks on a track set.
// Returns a combined error describing all problems found, or nil if valid.
func validateTracks(tracks []Info) error {
	var errs []string

	seen := make(map[Specialization]bool, len(tracks))
	for _, t := range tracks {
		if _, err := ParseSpecialization(string(t.ID)); err != nil {
			errs = append(errs, err.Error())
		}
		if seen[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate track %q", t.ID))
		}
		seen[t.ID] = true

		if t.Title.AR == "" || t.Title.EN == "" {
			errs = append(errs, fmt.Sprintf("track %q is missing a title", t.ID))
		}

		if len(t.Roadmap) != RoadmapLevels {
			errs = append(errs, fmt.Sprintf("track %q has %d roadmap levels, want %d", t.ID, len(t.Roadmap), RoadmapLevels))
			continue
		}
		for i, l := range t.Roadmap {
			if l.ID != i+1 {
				errs = append(errs, fmt.Sprintf("track %q level %d has id %d", t.ID, i+1, l.ID))
			}
			if len(l.Modules) == 0 {
				errs = append(errs, fmt.Sprintf("track %q level %d has no modules", t.ID, l.ID))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
