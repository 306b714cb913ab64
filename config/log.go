package config

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/distledger/ledgernode/infrastructure/logger"
)

var log, _ = logger.Get(logger.SubsystemTags.CFG)

const (
	defaultLogFilename    = "ledgernode.log"
	defaultErrLogFilename = "ledgernode_err.log"
)

// InitLogging attaches cfg's log directory to the shared logger backend,
// applies cfg.DebugLevel, and starts the backend's write goroutine. It
// should be called once, after loadConfig has resolved cfg.LogDir.
func InitLogging(cfg *Config) error {
	backend := logger.DefaultBackend()

	logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
	if err := backend.AddLogFile(logFile, logger.LevelTrace); err != nil {
		return errors.Wrapf(err, "failed to add log file %s", logFile)
	}

	errLogFile := filepath.Join(cfg.LogDir, defaultErrLogFilename)
	if err := backend.AddLogFileWithCustomRotator(errLogFile, logger.LevelWarn, 100*1000, 8); err != nil {
		return errors.Wrapf(err, "failed to add error log file %s", errLogFile)
	}

	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return err
	}

	return backend.Run()
}

// parseAndSetDebugLevels applies debugLevel, which is either a single level
// name applied to every subsystem (e.g. "debug") or a comma-separated list
// of <subsystem>=<level> pairs (e.g. "APP=trace,CFG=debug").
func parseAndSetDebugLevels(debugLevel string) error {
	if debugLevel == "" {
		return nil
	}

	if !strings.Contains(debugLevel, "=") {
		level, ok := logger.LevelFromString(debugLevel)
		if !ok {
			return errors.Errorf("the specified debug level [%s] is invalid", debugLevel)
		}
		logger.SetLevelAll(level)
		return nil
	}

	for _, pair := range strings.Split(debugLevel, ",") {
		fields := strings.Split(pair, "=")
		if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
			return errors.Errorf("the specified debug level contains an invalid subsystem/level pair [%s]", pair)
		}
		level, ok := logger.LevelFromString(fields[1])
		if !ok {
			return errors.Errorf("the specified debug level [%s] is invalid", fields[1])
		}
		logger.SetLevel(fields[0], level)
	}
	return nil
}
