package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sanity-io/pathdoc"
	"github.com/sanity-io/pathdoc/internal/tweet"
)

const (
	configBaseName   = "tweetedit"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	envPrefix = "TWEETEDIT"

	prettyFlagName   = "pretty"
	formatFlagName   = "format"
	logFileFlagName  = "log-file"
	verboseFlagName  = "verbose"
	writeFlagName    = "write"
	skipDateFlagName = "skip-date"
	parallelFlagName = "parallel"

	outputPrettyKey     = "output.pretty"
	outputFormatKey     = "output.format"
	geoDefaultLatKey    = "geo.default_latitude"
	geoDefaultLonKey    = "geo.default_longitude"
	skipDateConfigKey   = "tweet.skip_date"
	stampParallelConfig = "stamp.parallel"

	defaultOutputPretty  = false
	defaultOutputFormat  = string(formatJSON)
	defaultSkipDate      = false
	defaultStampParallel = 4

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".tweetedit.log"
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

	viper.SetDefault(outputPrettyKey, defaultOutputPretty)
	viper.SetDefault(outputFormatKey, defaultOutputFormat)
	viper.SetDefault(geoDefaultLatKey, tweet.DefaultLocation.Lat)
	viper.SetDefault(geoDefaultLonKey, tweet.DefaultLocation.Lon)
	viper.SetDefault(skipDateConfigKey, defaultSkipDate)
	viper.SetDefault(stampParallelConfig, defaultStampParallel)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	configErr = readConfig()
}

// configErr is reported once logging is configured.
var configErr error

// readConfig loads tweetedit.yaml. A missing file is not an error.
func readConfig() error {
	err := viper.ReadInConfig()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
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

	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger sends all logging, including the diagnostics of document
// operations, to a rotating file. Verbose forces the Debug level.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

func logger() *slog.Logger {
	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}

// documentOptions are the options every document of a command is created with.
func documentOptions() pathdoc.Options {
	return pathdoc.DefaultOptions.WithLogger(logger())
}

// defaultLocation is the configured position used when a record has none.
func defaultLocation() tweet.LatLon {
	return tweet.LatLon{
		Lat: viper.GetFloat64(geoDefaultLatKey),
		Lon: viper.GetFloat64(geoDefaultLonKey),
	}
}
