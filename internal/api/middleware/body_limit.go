package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
)

// BodyLimit ограничивает размер тела запроса
func BodyLimit(limitBytes int64) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limitBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
