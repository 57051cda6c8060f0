// Package ledgerlog provides the structured JSON logging setup used by
// cmd/ledgerctl. The core packages themselves never
// log (§7: the core is pure); only the embedding CLI does.
package ledgerlog

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Setup configures the standard library logger to emit structured JSON and
// returns the slog.Logger for richer logging within the CLI. Every line
// carries the component name and, when provided, the network name the
// node is running against.
func Setup(component, network string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: false,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				return slog.Attr{Key: "timestamp", Value: attr.Value}
			}
			if attr.Key == slog.LevelKey {
				return slog.String("severity", strings.ToUpper(attr.Value.String()))
			}
			if attr.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: attr.Value}
			}
			return attr
		},
	})

	attrs := []slog.Attr{slog.String("component", strings.TrimSpace(component))}
	if network = strings.TrimSpace(network); network != "" {
		attrs = append(attrs, slog.String("network", network))
	}

	withArgs := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		withArgs = append(withArgs, attr)
	}

	base := slog.New(handler).With(withArgs...)
	slog.SetDefault(base)

	stdBridge := slog.NewLogLogger(handler.WithAttrs(attrs), slog.LevelInfo)
	stdBridge.SetFlags(0)
	log.SetOutput(stdBridge.Writer())
	log.SetFlags(0)
	log.SetPrefix("")

	return base
}

// LogValidationErrors records the outcome of a rejected transaction. The
// core itself never calls this; it is the embedding CLI's responsibility
// to log what the core returned.
func LogValidationErrors(logger *slog.Logger, txHash string, errs []error) {
	args := make([]any, 0, len(errs)*2+2)
	args = append(args, "tx", txHash, "errorCount", len(errs))
	for i, e := range errs {
		args = append(args, slog.String("error"+strconv.Itoa(i), e.Error()))
	}
	logger.Warn("transaction rejected", args...)
}
