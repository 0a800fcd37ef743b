package formbook

import (
	"strings"

	"github.com/ukaji3/formbook-go/pkg/formbook/models"
)

// sectionStatus derives a section's status from its parsed portion: a
// section is started once any leaf holds a non-blank string, a true
// boolean or a non-zero number.
func sectionStatus(partial map[string]any) string {
	if started(partial) {
		return models.StatusInProgress
	}
	return models.StatusNotStarted
}

func started(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) != ""
	case bool:
		return t
	case float64:
		return t != 0
	case []any:
		for _, e := range t {
			if started(e) {
				return true
			}
		}
	case map[string]any:
		for _, e := range t {
			if started(e) {
				return true
			}
		}
	}
	return false
}
