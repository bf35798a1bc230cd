package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/stylin-backend/internal/session"
	"github.com/angelmondragon/stylin-backend/pkg/logger"
)

const SessionHeader = "X-Session-Id"

// SessionResolver finds or creates the session named by a client id.
type SessionResolver interface {
	Resolve(id string) (*session.Session, bool)
}

// Session resolves the shopper session from X-Session-Id, issuing a new one when the
// header is missing or unknown, and echoes the effective id back to the client.
func Session(sessions SessionResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requested := strings.TrimSpace(r.Header.Get(SessionHeader))
			sess, created := sessions.Resolve(requested)

			w.Header().Set(SessionHeader, sess.ID)

			ctx := WithSession(r.Context(), sess)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sess.ID)
				if created {
					logg.Info(logg.WithField(ctx, "requested_id", requested), "session.created")
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
