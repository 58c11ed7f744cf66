package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mysocialapp/backend/internal/session"
	"github.com/mysocialapp/backend/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type sessionStore interface {
	Get(ctx context.Context, token string) (*session.Session, error)
}

// AuthMiddlewareHandler resolves the session cookie once per request,
// injects the session into the request context, and redirects
// session-gated routes back to the login route when no session exists.
// Everything not listed in gatedPaths/gatedPathsPrefixes is public;
// that includes /chart, which is reachable without a session while all
// other data views are gated.
type AuthMiddlewareHandler struct {
	sessions          sessionStore
	gatedPaths        map[string]bool
	gatedPathPrefixes []string
}

func NewAuthMiddlewareHandler(sessions sessionStore) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		sessions: sessions,
		gatedPaths: map[string]bool{
			"/posts":   true,
			"/myposts": true,
		},
		gatedPathPrefixes: []string{
			"/posts/",
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsGated(path string) bool {
	if h.gatedPaths[path] {
		return true
	}
	for _, prefix := range h.gatedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			sess := h.resolveSession(ctx, r)
			if sess != nil {
				ctx = session.NewContext(ctx, sess)
			}

			if sess == nil && h.pathIsGated(r.URL.Path) {
				log.Tracef("[no session] [auth middleware] redirecting => %s", r.URL.Path)
				span.SetStatus(codes.Ok, "redirect-to-login")
				http.Redirect(w, r.WithContext(ctx), "/", http.StatusFound)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (h *AuthMiddlewareHandler) resolveSession(ctx context.Context, r *http.Request) *session.Session {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	sess, err := h.sessions.Get(ctx, cookie.Value)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			log.Errorf("[failed session check] => %s: %s", r.URL.Path, err)
		}
		return nil
	}

	return sess
}
