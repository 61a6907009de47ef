package domain

// ScopeRule maps a path prefix to a scope label.
type ScopeRule struct {
	Prefix string `yaml:"prefix"`
	Scope  string `yaml:"scope"`
}

// Rules holds the classification tables.
type Rules struct {
	// Types maps a file extension (with leading dot) to a commit type.
	Types map[string]CommitType

	// Scopes is scanned in declaration order; the first matching prefix wins.
	Scopes []ScopeRule
}

// DefaultRules returns the built-in extension and scope tables.
func DefaultRules() Rules {
	return Rules{
		Types: map[string]CommitType{
			".md":   TypeDocs,
			".bats": TypeTest,
			".sh":   TypeFeat,
			".py":   TypeFeat,
			".conf": TypeChore,
		},
		Scopes: []ScopeRule{
			{Prefix: "include/usr/local/bin/installer", Scope: "installer"},
			{Prefix: "scripts", Scope: "build"},
			{Prefix: "tests", Scope: "test"},
			{Prefix: "config", Scope: "config"},
			{Prefix: ".agent", Scope: "agent-os"},
			{Prefix: "include/usr/share/zfsbootmenu", Scope: "zbm"},
		},
	}
}
