package usecases

import (
	"regexp"
	"strings"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

// intentPattern matches an added diff line carrying an intent marker:
//
//	+ # [commit] feat: add installer retries
//	+// [COMMIT] fix: handle empty pool
var intentPattern = regexp.MustCompile(`^\+\s*[#/;\-]+\s*(?i:\[commit\])\s*(\w+):\s*(.*)$`)

// Intent is one (type, message) pair declared by a marker.
type Intent struct {
	Type    domain.CommitType
	Message string
}

// ExtractIntents returns the intent markers on added lines of diff, top to bottom.
// Removed and context lines are never inspected. Markers with a blank message are skipped.
func ExtractIntents(diff string) []Intent {
	if diff == "" {
		return nil
	}

	var intents []Intent
	for _, line := range strings.Split(diff, "\n") {
		if !strings.HasPrefix(line, "+") || strings.HasPrefix(line, "+++") {
			continue
		}
		m := intentPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		msg := strings.TrimSpace(m[2])
		if msg == "" {
			continue
		}
		intents = append(intents, Intent{Type: domain.CommitType(m[1]), Message: msg})
	}
	return intents
}
