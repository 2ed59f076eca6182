package cli

import (
	"io"
	"log/slog"
)

// SetupLogging installs a text slog handler on w as the default logger:
// debug level when verbose, warnings only otherwise.
func SetupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
