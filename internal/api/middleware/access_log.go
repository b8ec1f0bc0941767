package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// AccessLog пишет строку лога на каждый запрос; 5xx уровнем Error
func AccessLog(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)

			next.ServeHTTP(sw, r)

			format := "%s %s - status=%d, duration_ms=%d, request_id=%s"
			args := []interface{}{r.Method, r.URL.Path, sw.status, time.Since(start).Milliseconds(), RequestIDFrom(r.Context())}
			if sw.status >= http.StatusInternalServerError {
				logger.Error(format, args...)
				return
			}
			logger.Info(format, args...)
		})
	}
}
