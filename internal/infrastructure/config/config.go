// Package config provides configuration loading for the smart-commit application.
// It handles loading the knowledge log location and the optional ClickHouse mirror
// from environment variables, and classification rules from an optional YAML file
// in the repository. Log level and app name are read by the logger itself.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ch "github.com/MyCarrier-DevOps/goLibMyCarrier/clickhouse"
	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/smart-commit/internal/adapters/knowledge"
	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

// Environment variable names.
const (
	// EnvLogPath overrides the knowledge log path, relative to the worktree root.
	EnvLogPath = "SMART_COMMIT_LOG_PATH"

	// EnvRules is the path to a YAML rules file, relative to the worktree root.
	EnvRules = "SMART_COMMIT_RULES"

	// EnvClickHouseHostname enables the ClickHouse knowledge mirror when set.
	// The remaining CLICKHOUSE_* settings are read by the goLibMyCarrier loader.
	EnvClickHouseHostname = "CLICKHOUSE_HOSTNAME"
)

// DefaultRulesFile is looked up in the worktree root when EnvRules is unset.
const DefaultRulesFile = ".smart-commit.yaml"

// Configuration errors.
var (
	// ErrRulesNotFound indicates an explicitly configured rules file does not exist.
	ErrRulesNotFound = errors.New("rules file not found")

	// ErrRulesInvalid indicates the rules file could not be parsed or has empty entries.
	ErrRulesInvalid = errors.New("rules file is invalid")
)

// Config holds all application configuration.
type Config struct {
	// KnowledgeLogPath is the absolute path of the JSONL knowledge log.
	KnowledgeLogPath string

	// Rules holds the extension and scope tables.
	Rules domain.Rules

	// ClickHouse configures the optional knowledge mirror; nil when disabled.
	ClickHouse *ch.ClickhouseConfig
}

// rulesFile is the on-disk shape of the rules file.
type rulesFile struct {
	Types  map[string]string  `yaml:"types"`
	Scopes []domain.ScopeRule `yaml:"scopes"`
}

// Load loads the application configuration for the worktree at root.
//
// Rules are read from SMART_COMMIT_RULES when set (the file must exist), otherwise
// from .smart-commit.yaml in root when present. Extension entries are merged over
// the defaults; a non-empty scope list replaces the default table.
func Load(root string) (*Config, error) {
	rules, err := loadRules(root)
	if err != nil {
		return nil, err
	}

	chConfig, err := loadClickHouse()
	if err != nil {
		return nil, err
	}

	logPath := os.Getenv(EnvLogPath)
	if logPath == "" {
		logPath = knowledge.DefaultPath
	}

	return &Config{
		KnowledgeLogPath: resolve(root, logPath),
		Rules:            rules,
		ClickHouse:       chConfig,
	}, nil
}

// loadClickHouse returns nil when the mirror is disabled.
func loadClickHouse() (*ch.ClickhouseConfig, error) {
	if os.Getenv(EnvClickHouseHostname) == "" {
		return nil, nil
	}
	chConfig, err := ch.ClickhouseLoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load ClickHouse config: %w", err)
	}
	return chConfig, nil
}

func loadRules(root string) (domain.Rules, error) {
	rules := domain.DefaultRules()

	path := os.Getenv(EnvRules)
	explicit := path != ""
	if !explicit {
		path = DefaultRulesFile
	}
	path = resolve(root, path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return rules, fmt.Errorf("%w: %s", ErrRulesNotFound, path)
			}
			return rules, nil
		}
		return rules, fmt.Errorf("failed to read rules file: %w", err)
	}

	return parseRules(data, rules)
}

// parseRules applies the YAML document in data on top of base.
func parseRules(data []byte, base domain.Rules) (domain.Rules, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return base, fmt.Errorf("%w: %w", ErrRulesInvalid, err)
	}

	types := make(map[string]domain.CommitType, len(base.Types)+len(file.Types))
	for ext, t := range base.Types {
		types[ext] = t
	}
	for ext, t := range file.Types {
		ext = strings.TrimSpace(ext)
		t = strings.TrimSpace(t)
		if ext == "" || t == "" {
			return base, fmt.Errorf("%w: empty extension or type in types", ErrRulesInvalid)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		types[ext] = domain.CommitType(t)
	}

	scopes := base.Scopes
	if len(file.Scopes) > 0 {
		for i, rule := range file.Scopes {
			if rule.Prefix == "" || rule.Scope == "" {
				return base, fmt.Errorf("%w: scope entry %d needs prefix and scope", ErrRulesInvalid, i+1)
			}
		}
		scopes = file.Scopes
	}

	return domain.Rules{Types: types, Scopes: scopes}, nil
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
