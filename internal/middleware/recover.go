package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/sqooli/partner-api/internal/pkg/logger"
	"github.com/sqooli/partner-api/internal/pkg/response"
)

// Recover turns a handler panic into a 500 envelope. http.ErrAbortHandler
// is re-raised so the server can drop the connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.FromContext(r.Context()).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("Panic recovered")
			response.InternalError(w)
		}()

		next.ServeHTTP(w, r)
	})
}
