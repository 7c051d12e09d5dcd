package log

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Middleware logs one record per request at info level, with the chi
// request ID when the RequestID middleware ran first.
func Middleware(l *slog.Logger) func(http.Handler) http.Handler {
	l = WithComponent(l, ComponentHTTP)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			l.LogAttrs(r.Context(), slog.LevelInfo, "request",
				slog.String(FieldRequestID, middleware.GetReqID(r.Context())),
				slog.String(FieldMethod, r.Method),
				slog.String(FieldPath, r.URL.Path),
				slog.Int(FieldStatus, status),
				slog.Int64(FieldDuration, time.Since(start).Milliseconds()),
			)
		})
	}
}
