package fleet

import "strings"

// HasCapabilities reports whether a photographer's specialties cover every
// requested category. Containment, not exact match: a photographer with a
// superset of the needed specialties qualifies. Category names are compared
// case-insensitively.
func HasCapabilities(specialties, requested []string) bool {
	for _, want := range requested {
		found := false
		for _, have := range specialties {
			if strings.EqualFold(strings.TrimSpace(have), strings.TrimSpace(want)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
