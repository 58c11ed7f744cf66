package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mysocialapp/backend/internal/middleware"
	"github.com/mysocialapp/backend/internal/placeholder"
	"github.com/mysocialapp/backend/internal/session"
	"github.com/mysocialapp/backend/internal/telemetry/metrics"
	"github.com/mysocialapp/backend/internal/telemetry/tracing"
	"github.com/mysocialapp/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service        *Service
	metricsManager *metrics.Manager
}

func NewHandler(service *Service, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	loginAllowedPerMin int,
) {
	mainRouter.HandleFunc("/", handler.handleLoginPage).Methods("GET").Name("login-page")
	mainRouter.HandleFunc("/logout", handler.handleLogout).Methods("GET", "POST", "OPTIONS").Name("logout")

	// rate limit the login endpoint to prevent abuse
	loginHandler := middleware.RateLimit(
		rateLimiter, "login", loginAllowedPerMin, handler.metricsManager,
	)(http.HandlerFunc(handler.handleLogin))
	mainRouter.Handle("/", loginHandler).Methods("POST", "OPTIONS").Name("login")
}

func (handler *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	type loginPageResponse struct {
		Title       string `json:"title"`
		RegisterURL string `json:"registerUrl"`
	}

	respBytes, err := json.Marshal(loginPageResponse{
		Title:       "Sign in",
		RegisterURL: "/register",
	})
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var loginReq loginRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		loginReq = loginRequest{
			Email:    r.Form.Get("email"),
			Password: r.Form.Get("password"),
		}
	}

	token, sess, err := handler.service.Login(ctx, loginReq.Email, loginReq.Password)
	if err != nil {
		handler.metricsManager.CounterFailedLogins.Inc()

		var validationErr *ValidationError
		switch {
		case errors.As(err, &validationErr):
			http.Error(w, validationErr.Message, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidCredentials):
			log.Tracef("failed login attempt for: %s", loginReq.Email)
			http.Error(
				w,
				"invalid credentials, use your email as username and your username as password",
				http.StatusBadRequest,
			)
		case errors.Is(err, placeholder.ErrUnavailable):
			log.Errorf("login failed, remote data source: %s", err)
			http.Error(w, "login failed, please try again later", http.StatusBadGateway)
		default:
			log.Errorf("login failed: %s", err)
			http.Error(w, "login failed", http.StatusInternalServerError)
		}
		return
	}

	handler.metricsManager.CounterLogins.Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// admins land on the full posts listing, regular users on their own
	target := "/myposts"
	if sess.IsAdmin {
		target = "/posts"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	cookie, err := r.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		if err := handler.service.Logout(ctx, cookie.Value); err != nil {
			log.Errorf("logout, clear session: %s", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, "/", http.StatusFound)
}
