package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sqooli/partner-api/internal/pkg/logger"
)

const callerKey contextKey = "access_log_caller"

// caller is filled by SessionAuth so the access log can name who called.
type caller struct {
	principal *Principal
}

// Logger writes one access log line per request and attaches a request
// scoped logger to the context.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqLogger := log.With().Str("request_id", GetRequestID(r.Context())).Logger()
		who := &caller{}
		ctx := logger.WithContext(r.Context(), &reqLogger)
		ctx = context.WithValue(ctx, callerKey, who)

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		event := levelFor(&reqLogger, status).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("ip", r.RemoteAddr)
		if p := who.principal; p != nil {
			event = event.Str("user_id", p.UserID.String()).Str("partner_id", p.PartnerID.String())
		}
		event.Msg("HTTP Request")
	})
}

func levelFor(l *zerolog.Logger, status int) *zerolog.Event {
	switch {
	case status >= 500:
		return l.Error()
	case status >= 400:
		return l.Warn()
	default:
		return l.Info()
	}
}

func rememberCaller(ctx context.Context, p *Principal) {
	if c, ok := ctx.Value(callerKey).(*caller); ok {
		c.principal = p
	}
}
