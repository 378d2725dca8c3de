package logging

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts a zerolog.Logger to the Logger interface. Used for the
// human-readable console format; JSON output goes through SlogLogger.
type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	addFields(z.l.Info(), args).Msg(msg)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	addFields(z.l.Warn(), args).Msg(msg)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	addFields(z.l.Error(), args).Msg(msg)
}

func (z *ZerologLogger) With(args ...any) Logger {
	c := z.l.With()
	for k, v := range pairs(args) {
		c = c.Interface(k, v)
	}
	return &ZerologLogger{l: c.Logger()}
}

func addFields(e *zerolog.Event, args []any) *zerolog.Event {
	for k, v := range pairs(args) {
		e = e.Interface(k, v)
	}
	return e
}

// pairs interprets args as alternating keys and values, the same convention
// slog uses. A trailing value without a key is stored under "!BADKEY".
func pairs(args []any) map[string]any {
	m := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		if i+1 < len(args) {
			m[key] = args[i+1]
		} else {
			m["!BADKEY"] = args[i]
		}
	}
	return m
}
