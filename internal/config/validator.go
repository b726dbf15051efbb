package config

import (
	"fmt"
	"strings"
)

// Validate checks the catalog for:
//   - Missing version or empty catalog
//   - Empty or duplicate activity names
//   - Negative capacity
//   - Empty or duplicate seeded participants
func Validate(cfg *CatalogConfig) error {
	if cfg.Version == "" {
		return fmt.Errorf("config: version is required")
	}
	var errs []string
	if len(cfg.Activities) == 0 {
		errs = append(errs, "activities must not be empty")
	}

	names := make(map[string]int) // name → index
	for i, a := range cfg.Activities {
		if strings.TrimSpace(a.Name) == "" {
			errs = append(errs, fmt.Sprintf("activities[%d]: name is required", i))
			continue
		}
		if prev, ok := names[a.Name]; ok {
			errs = append(errs, fmt.Sprintf("duplicate activity %q (first seen at activities[%d], again at activities[%d])", a.Name, prev, i))
		} else {
			names[a.Name] = i
		}
		if a.MaxParticipants < 0 {
			errs = append(errs, fmt.Sprintf("activity %s: max_participants must be >= 0", a.Name))
		}
		validateParticipants(a, &errs)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func validateParticipants(a ActivityDef, errs *[]string) {
	seen := make(map[string]struct{}, len(a.Participants))
	for j, p := range a.Participants {
		if strings.TrimSpace(p) == "" {
			*errs = append(*errs, fmt.Sprintf("activity %s: participants[%d] is empty", a.Name, j))
			continue
		}
		if _, ok := seen[p]; ok {
			*errs = append(*errs, fmt.Sprintf("activity %s: duplicate participant %q", a.Name, p))
			continue
		}
		seen[p] = struct{}{}
	}
}
