package usecases

import (
	"context"
	"path"
	"strings"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

// Keyword sets scanned on changed diff lines, compared upper-cased.
var (
	fixKeywords      = []string{"FIX", "BUG", "ERROR"}
	refactorKeywords = []string{"REFACTOR", "OPTIMIZE"}
)

// HeuristicClassifier infers a commit type from a path and its diff.
type HeuristicClassifier struct {
	types map[string]domain.CommitType
}

// NewHeuristicClassifier creates a classifier using the given extension table.
func NewHeuristicClassifier(types map[string]domain.CommitType) *HeuristicClassifier {
	return &HeuristicClassifier{types: types}
}

// Classify returns the heuristic commit type for p.
// Keyword overrides win over the extension table; fix keywords win over refactor keywords.
func (c *HeuristicClassifier) Classify(p, diff string) domain.CommitType {
	ctype, ok := c.types[path.Ext(p)]
	if !ok {
		ctype = domain.DefaultType
	}

	changed := strings.ToUpper(changedText(diff))
	switch {
	case containsAny(changed, fixKeywords):
		return domain.TypeFix
	case containsAny(changed, refactorKeywords):
		return domain.TypeRefactor
	}
	return ctype
}

// changedText joins the content of added and removed lines, skipping file headers.
func changedText(diff string) string {
	if diff == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}
		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
			b.WriteString(line[1:])
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// FileClassifier resolves the Classification of each changed file.
type FileClassifier struct {
	inspector  *DiffInspector
	heuristics *HeuristicClassifier
	logger     Logger
}

// NewFileClassifier creates a FileClassifier.
func NewFileClassifier(inspector *DiffInspector, heuristics *HeuristicClassifier, log Logger) *FileClassifier {
	return &FileClassifier{inspector: inspector, heuristics: heuristics, logger: log}
}

// Classify inspects the file's diff. The last intent marker wins; without one,
// the heuristic type is used.
func (c *FileClassifier) Classify(ctx context.Context, file domain.ChangedFile) domain.Classification {
	diff, _ := c.inspector.Inspect(ctx, file)

	if intents := ExtractIntents(diff); len(intents) > 0 {
		last := intents[len(intents)-1]
		c.logger.Debug(ctx, "classified by intent marker", map[string]interface{}{
			"path":    file.Path,
			"type":    string(last.Type),
			"message": last.Message,
			"markers": len(intents),
		})
		return domain.Explicit{CommitType: last.Type, Message: last.Message}
	}

	ctype := c.heuristics.Classify(file.Path, diff)
	c.logger.Debug(ctx, "classified by heuristics", map[string]interface{}{
		"path": file.Path,
		"type": string(ctype),
	})
	return domain.Heuristic{CommitType: ctype}
}
