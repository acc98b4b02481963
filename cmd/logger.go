package main

import (
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func levelOption(name string) (level.Option, error) {
	switch name {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q, want debug|info|warn|error", name)
	}
}

// newLogger builds the logfmt logger shared by every component.
func newLogger(w io.Writer) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)
	return logger
}

// withLevel drops records below levelName. Unknown names keep everything.
func withLevel(logger log.Logger, levelName string) log.Logger {
	opt, err := levelOption(levelName)
	if err != nil {
		return logger
	}
	return level.NewFilter(logger, opt)
}
