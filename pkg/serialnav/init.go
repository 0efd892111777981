package serialnav

import (
	"log/slog"
	"os"

	"github.com/BrandonKowalski/serialnav/pkg/serialnav/constants"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/internal"
)

// Options tunes a Queue. Zero values fall back to the package defaults.
type Options struct {
	StableTurns int          // Unchanged turns before a polled transition counts as finished
	MaxTurns    int          // Turns without a signal before completion is forced
	Logger      *slog.Logger // Defaults to the internal logger
}

func (o Options) withDefaults() Options {
	if o.StableTurns <= 0 {
		o.StableTurns = constants.DefaultStableTurns
	}
	if o.MaxTurns <= 0 {
		o.MaxTurns = constants.DefaultMaxTurns
	}
	if o.MaxTurns <= o.StableTurns {
		o.MaxTurns = o.StableTurns + 1
	}
	if o.Logger == nil {
		o.Logger = internal.GetInternalLogger()
	}
	return o
}

// InitOptions configures process-wide state. Call Init before creating queues.
type InitOptions struct {
	LogPath            string // Full path for the log file, parent directories are created
	LogLevel           string // Application log level ("debug", "info", "warn", "error")
	Debug              bool   // Raise the internal logger to debug
	Quiet              bool   // Do not echo logs to stdout
	DisableSerializing bool   // Start with the queue bypassed
}

// Init sets up logging and the global serializing switch.
func Init(options InitOptions) {
	internal.SetQuiet(options.Quiet)
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	if options.Debug || constants.IsDevMode() || os.Getenv(constants.DebugEnvVar) != "" {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelWarn)
	}

	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}

	if options.DisableSerializing || constants.SerializingDisabledByEnv() {
		SetSerializingEnabled(false)
	}
}

// Close flushes and closes the log file.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
