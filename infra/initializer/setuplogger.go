package initializer

import (
	"log/slog"
	"os"

	"github.com/amirasaad/fxcalc/pkg/config"
	"github.com/charmbracelet/log"
)

// setupLogger builds the process-wide slog logger on top of charmbracelet
// log, honoring the configured level and format.
func setupLogger(cfg *config.Log) *slog.Logger {
	formattersMap := map[string]log.Formatter{
		"json": log.JSONFormatter,
		"text": log.TextFormatter,
	}
	formatter := log.TextFormatter
	if f, ok := formattersMap[cfg.Format]; ok {
		formatter = f
	}

	handler := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: true,
		Level:           log.Level(cfg.Level),
		Prefix:          "fxcalc",
		Formatter:       formatter,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
