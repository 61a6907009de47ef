package usecases

import (
	"strings"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

// ScopeResolver maps paths to scope labels using an ordered prefix table.
type ScopeResolver struct {
	rules []domain.ScopeRule
}

// NewScopeResolver creates a ScopeResolver. Rule order is match order.
func NewScopeResolver(rules []domain.ScopeRule) *ScopeResolver {
	return &ScopeResolver{rules: rules}
}

// ScopeOf returns the scope of the first rule whose prefix matches p,
// or domain.DefaultScope.
//
// TODO: declaration order wins even when a later rule has a longer prefix;
// switch to longest-prefix matching once existing rule files are reordered.
func (r *ScopeResolver) ScopeOf(p string) string {
	for _, rule := range r.rules {
		if strings.HasPrefix(p, rule.Prefix) {
			return rule.Scope
		}
	}
	return domain.DefaultScope
}

// Resolve returns the most frequent scope across paths. Ties go to the label
// encountered first; an empty set resolves to domain.DefaultScope.
func (r *ScopeResolver) Resolve(paths []string) string {
	if len(paths) == 0 {
		return domain.DefaultScope
	}

	counts := make(map[string]int)
	var order []string
	for _, p := range paths {
		scope := r.ScopeOf(p)
		if counts[scope] == 0 {
			order = append(order, scope)
		}
		counts[scope]++
	}

	best := order[0]
	for _, scope := range order[1:] {
		if counts[scope] > counts[best] {
			best = scope
		}
	}
	return best
}
