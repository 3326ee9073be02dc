package parse

import (
	"io"
	"log/slog"
	"os"
)

// Tracer follows the stages visited while parsing. The depth is the current
// nesting level of the parse, so a single tracer can be shared by concurrent
// parses.
type Tracer interface {
	Enter(string, int)
	Leave(string, int)
	Error(string, error)
}

type discardTracer struct{}

func (_ discardTracer) Enter(_ string, _ int)   {}
func (_ discardTracer) Leave(_ string, _ int)   {}
func (_ discardTracer) Error(_ string, _ error) {}

type stdioTracer struct {
	logger *slog.Logger
}

func TraceStdout() Tracer {
	return TraceWith(stdioLogger(os.Stdout))
}

func TraceStderr() Tracer {
	return TraceWith(stdioLogger(os.Stderr))
}

func TraceWith(logger *slog.Logger) Tracer {
	if logger == nil {
		return discardTracer{}
	}
	tracer := stdioTracer{
		logger: logger,
	}
	return &tracer
}

func stdioLogger(w io.Writer) *slog.Logger {
	opts := slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	return slog.New(slog.NewTextHandler(w, &opts))
}

func (t *stdioTracer) Enter(rule string, depth int) {
	args := []any{
		"rule",
		rule,
		"depth",
		depth,
	}
	t.logger.Debug("start parse rule", args...)
}

func (t *stdioTracer) Leave(rule string, depth int) {
	args := []any{
		"rule",
		rule,
		"depth",
		depth,
	}
	t.logger.Debug("done parse rule", args...)
}

func (t *stdioTracer) Error(rule string, err error) {
	args := []any{
		"rule",
		rule,
		"error",
		err,
	}
	t.logger.Error("parse rule failed", args...)
}
