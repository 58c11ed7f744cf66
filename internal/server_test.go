package internal

import (
	"net/http"
	"testing"

	"github.com/mysocialapp/backend/internal/auth"
	"github.com/mysocialapp/backend/internal/config"
	"github.com/mysocialapp/backend/internal/placeholder"
	"github.com/mysocialapp/backend/internal/session"
	"github.com/mysocialapp/backend/internal/telemetry/metrics"

	"github.com/go-redis/redismock/v8"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, _ := redismock.NewClientMock()
	t.Cleanup(func() { _ = db.Close() })

	metricsManager := metrics.NewTestManager()
	placeholderApi := placeholder.NewClient(placeholder.DefaultBaseURL, http.DefaultClient, metricsManager)
	sessionStore := session.NewStore(db)

	return &Server{
		config: &config.Config{
			LoginRateLimitAllowedPerMin: 5,
		},
		placeholderApi: placeholderApi,
		redisClient:    db,
		sessionStore:   sessionStore,
		authService: auth.NewService(
			auth.Admin{Email: auth.DefaultAdminEmail, Password: auth.DefaultAdminPassword},
			placeholderApi,
			sessionStore,
		),
		metricsManager: metricsManager,
		otelShutdown:   func() {},
	}
}

func TestServer_routerSetup(t *testing.T) {
	server := newTestServer(t)
	router := server.routerSetup()
	require.NotNil(t, router)

	for _, tc := range []struct {
		name   string
		method string
		path   string
	}{
		{name: "login-page", method: "GET", path: "/"},
		{name: "login", method: "POST", path: "/"},
		{name: "logout", method: "GET", path: "/logout"},
		{name: "logout", method: "POST", path: "/logout"},
		{name: "register-page", method: "GET", path: "/register"},
		{name: "register", method: "POST", path: "/register"},
		{name: "posts-list", method: "GET", path: "/posts"},
		{name: "post-detail", method: "GET", path: "/posts/5"},
		{name: "my-posts", method: "GET", path: "/myposts"},
		{name: "users-list", method: "GET", path: "/users"},
		{name: "user-detail", method: "GET", path: "/users/5"},
		{name: "chart", method: "GET", path: "/chart"},
		{name: "unknown", method: "GET", path: "/whatever"},
	} {
		req, err := http.NewRequest(tc.method, tc.path, nil)
		require.NoError(t, err)

		routeMatch := &mux.RouteMatch{}
		require.True(t, router.Match(req, routeMatch), "no route for %s %s", tc.method, tc.path)
		assert.Equal(t, tc.name, routeMatch.Route.GetName(), "%s %s", tc.method, tc.path)
	}
}
