package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

func TestScopeResolver_ScopeOf(t *testing.T) {
	resolver := NewScopeResolver(domain.DefaultRules().Scopes)

	tests := []struct {
		path string
		want string
	}{
		{"include/usr/local/bin/installer/run.sh", "installer"},
		{"scripts/a.sh", "build"},
		{"tests/c.bats", "test"},
		{"config/zbm.conf", "config"},
		{".agent/logs/knowledge_base.jsonl", "agent-os"},
		{"include/usr/share/zfsbootmenu/lib/core.sh", "zbm"},
		{"README.md", domain.DefaultScope},
		{"include/usr/local/bin/other", domain.DefaultScope},
		// Prefixes are raw string prefixes, not path components.
		{"scripts-old/a.sh", "build"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.ScopeOf(tt.path))
		})
	}
}

func TestScopeResolver_FirstDeclaredRuleWins(t *testing.T) {
	resolver := NewScopeResolver([]domain.ScopeRule{
		{Prefix: "src", Scope: "app"},
		{Prefix: "src/api", Scope: "api"},
	})

	assert.Equal(t, "app", resolver.ScopeOf("src/api/handler.go"))
}

func TestScopeResolver_Resolve(t *testing.T) {
	resolver := NewScopeResolver(domain.DefaultRules().Scopes)

	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{
			name:  "empty set",
			paths: nil,
			want:  domain.DefaultScope,
		},
		{
			name:  "single path",
			paths: []string{"tests/c.bats"},
			want:  "test",
		},
		{
			name:  "majority wins",
			paths: []string{"scripts/a.sh", "scripts/b.sh", "tests/c.bats"},
			want:  "build",
		},
		{
			name:  "majority wins regardless of position",
			paths: []string{"tests/c.bats", "scripts/a.sh", "scripts/b.sh"},
			want:  "build",
		},
		{
			name:  "tie goes to first encountered",
			paths: []string{"tests/c.bats", "scripts/a.sh"},
			want:  "test",
		},
		{
			name:  "unmatched paths count as core",
			paths: []string{"README.md", "docs/x.md", "scripts/a.sh"},
			want:  domain.DefaultScope,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Resolve(tt.paths))
		})
	}
}
