package cmd

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "cify"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	logFileFlagName     = "log-file"
	verboseFlagName     = "verbose"
	keepPartialFlagName = "keep-partial"

	minDistanceFlagName = "min"
	maxDistanceFlagName = "max"
	fromFlagName        = "from"
	toFlagName          = "to"
	samplesFlagName     = "samples"
	formatFlagName      = "format"

	keepPartialConfigKey = "embed.keep_partial"

	minDistanceConfigKey = "curves.min_distance"
	maxDistanceConfigKey = "curves.max_distance"
	fromConfigKey        = "curves.from"
	toConfigKey          = "curves.to"
	samplesConfigKey     = "curves.samples"
	formatConfigKey      = "curves.format"

	defaultKeepPartial = false

	defaultMinDistance = 300.0
	defaultMaxDistance = 500.0
	defaultFrom        = 0.0
	defaultTo          = 600.0
	defaultSamples     = 13
	defaultFormat      = "table"

	envPrefix = "CIFY"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ""
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(keepPartialConfigKey, defaultKeepPartial)

	viper.SetDefault(minDistanceConfigKey, defaultMinDistance)
	viper.SetDefault(maxDistanceConfigKey, defaultMaxDistance)
	viper.SetDefault(fromConfigKey, defaultFrom)
	viper.SetDefault(toConfigKey, defaultTo)
	viper.SetDefault(samplesConfigKey, defaultSamples)
	viper.SetDefault(formatConfigKey, defaultFormat)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// Logs go to logPath through lumberjack when set. Without a log file they go
// to stderr in verbose mode and are discarded otherwise, so generated source
// on stdout is never interleaved with log lines.
func configureLogger(logPath string, verbose bool, stderr io.Writer) {
	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	var logWriter io.Writer

	switch {
	case strings.TrimSpace(logPath) != "":
		logWriter = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    viper.GetInt(logMaxSizeKey),
			MaxBackups: viper.GetInt(logMaxBackupsKey),
			MaxAge:     viper.GetInt(logMaxAgeKey),
			Compress:   viper.GetBool(logCompressKey),
		}
	case verbose:
		logWriter = stderr
	default:
		logWriter = io.Discard
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
