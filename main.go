// Package main is the entry point for the smart-commit CLI application.
// smart-commit groups pending working tree changes by intent and creates
// one atomic commit per group, recording each commit in a knowledge log.
package main

import (
	"context"
	"io"
	"os"

	ch "github.com/MyCarrier-DevOps/goLibMyCarrier/clickhouse"
	"github.com/MyCarrier-DevOps/goLibMyCarrier/logger"
	"github.com/google/uuid"

	"github.com/MyCarrier-DevOps/smart-commit/cmd"
	"github.com/MyCarrier-DevOps/smart-commit/internal/adapters/git"
	"github.com/MyCarrier-DevOps/smart-commit/internal/adapters/knowledge"
	logadapter "github.com/MyCarrier-DevOps/smart-commit/internal/adapters/logger"
	"github.com/MyCarrier-DevOps/smart-commit/internal/adapters/output"
	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
	"github.com/MyCarrier-DevOps/smart-commit/internal/infrastructure/config"
	"github.com/MyCarrier-DevOps/smart-commit/internal/usecases"
)

func main() {
	cmd.SetDefaultDependencies(newDependencies())
	cmd.Execute()
}

// newDependencies wires the production implementations.
func newDependencies() *cmd.Dependencies {
	runID := uuid.NewString()

	return &cmd.Dependencies{
		// The zap logger reads LOG_LEVEL when built, so it is created lazily
		// after the verbose flag has been applied.
		LoggerFactory: func() cmd.Logger {
			zapLog := logger.NewZapLoggerFromConfig()
			return logadapter.NewZapAdapter(zapLog).WithFields(map[string]any{
				"run_id": runID,
			})
		},

		RepoFactory: func(path string, log cmd.Logger) (domain.ChangeTracker, error) {
			return git.NewGoGitRepository(path, log)
		},

		ConfigLoader: func(root string) (*cmd.AppConfig, error) {
			cfg, err := config.Load(root)
			if err != nil {
				return nil, err
			}
			appCfg := &cmd.AppConfig{
				Rules:            cfg.Rules,
				KnowledgeLogPath: cfg.KnowledgeLogPath,
			}
			if cfg.ClickHouse != nil {
				appCfg.ClickHouseConfig = cfg.ClickHouse
			}
			return appCfg, nil
		},

		SinkFactory: newSink,

		CommitterFactory: func(
			tracker domain.ChangeTracker,
			sink domain.KnowledgeSink,
			rules domain.Rules,
			progress domain.ProgressReporter,
			log cmd.Logger,
		) domain.Committer {
			return usecases.NewSmartCommitter(tracker, sink, rules, progress, log)
		},

		ProgressFactory: func(out io.Writer) domain.ProgressReporter {
			return output.NewWriterWithOutput(out)
		},

		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// newSink opens the JSONL knowledge log and, when configured, the ClickHouse mirror.
// An unreachable mirror is logged and skipped.
func newSink(ctx context.Context, cfg *cmd.AppConfig, log cmd.Logger) (domain.KnowledgeSink, error) {
	file := knowledge.NewFileSink(cfg.KnowledgeLogPath)
	if cfg.ClickHouseConfig == nil {
		return file, nil
	}

	chConfig, ok := cfg.ClickHouseConfig.(*ch.ClickhouseConfig)
	if !ok {
		return nil, newConfigTypeError("*ch.ClickhouseConfig")
	}

	mirror, err := knowledge.OpenClickHouseSink(ctx, chConfig)
	if err != nil {
		log.Warn(ctx, "clickhouse knowledge mirror disabled", map[string]interface{}{
			"error": err.Error(),
		})
		return file, nil
	}
	return knowledge.NewMultiSink(log, file, mirror), nil
}

func newConfigTypeError(expected string) error {
	return &configTypeError{expected: expected}
}

// configTypeError is returned when configuration type assertion fails.
type configTypeError struct {
	expected string
}

func (e *configTypeError) Error() string {
	return "invalid configuration type: expected " + e.expected
}
