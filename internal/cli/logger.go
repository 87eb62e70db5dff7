package cli

import (
	"io"
	"log/slog"
)

// newLogger builds the CLI logger from the --log-* flags. Records are tagged
// with the tree being bootstrapped and carry no timestamp, so runs over the
// same tree produce comparable output.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if err := level.UnmarshalText([]byte(opts.LogLevel)); err != nil {
		level = slog.LevelWarn
	}

	handlerOpts := &slog.HandlerOptions{Level: level, ReplaceAttr: dropTime}
	var handler slog.Handler
	if opts.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler).With("tree", opts.treeLabel())
}

func dropTime(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return attr
}

// treeLabel names the selected tree in log records.
func (o *RootOptions) treeLabel() string {
	if o.Dir == "" {
		return "builtin"
	}
	return o.Dir
}
