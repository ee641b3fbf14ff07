package logger

import (
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/metrics"
)

type Logger struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Logger {
	return &Logger{
		log: log.With(slog.String("component", "http_logger")),
	}
}

// Middleware logs every request after it completes and feeds the request
// counters.
func (l *Logger) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		method := ctx.Method()
		path := ctx.URL().Path
		remoteAddr := ctx.RemoteAddr()

		next(ctx)

		duration := time.Since(start)
		status := ctx.Status()

		metrics.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		metrics.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

		l.log.Info("HTTP request",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", duration),
			slog.String("remote_addr", remoteAddr),
		)
	}
}
