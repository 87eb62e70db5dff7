package jsmodules

import (
	"log/slog"

	"github.com/dop251/goja_nodejs/console"
)

type slogPrinter struct {
	logger *slog.Logger
}

// NewSlogPrinter returns a console printer that forwards console.log,
// console.warn and console.error from scripts to logger.
func NewSlogPrinter(logger *slog.Logger) console.Printer {
	if logger == nil {
		logger = slog.Default()
	}
	return slogPrinter{logger: logger.With("source", "console")}
}

func (p slogPrinter) Log(msg string)   { p.logger.Info(msg) }
func (p slogPrinter) Warn(msg string)  { p.logger.Warn(msg) }
func (p slogPrinter) Error(msg string) { p.logger.Error(msg) }
