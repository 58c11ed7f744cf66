package auth

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mysocialapp/backend/internal/placeholder"
	"github.com/mysocialapp/backend/internal/session"

	"github.com/go-redis/redismock/v8"
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

const testToken = "test_session_token"

var testUsers = []placeholder.User{
	{ID: 5, Name: "Chelsey Dietrich", Username: "Kamren", Email: "Lucio_Hettinger@annie.ca"},
	{ID: 7, Name: "Kurtis Weissnat", Username: "Elwyn.Skiles", Email: "Telly.Hoeger@billy.biz"},
}

func newTestService(t *testing.T) (*Service, *placeholder.TestApi, redismock.ClientMock) {
	t.Helper()

	db, mock := redismock.NewClientMock()
	t.Cleanup(func() { _ = db.Close() })

	api := placeholder.NewTestApi(testUsers, nil, nil)
	service := NewService(
		Admin{Email: DefaultAdminEmail, Password: DefaultAdminPassword},
		api,
		session.NewStore(db),
	)
	service.RandStringFunc = func(_ int) (string, error) {
		return testToken, nil
	}
	return service, api, mock
}

func expectSessionSet(t *testing.T, mock redismock.ClientMock, sess session.Session) {
	t.Helper()

	sessBytes, err := json.Marshal(sess)
	require.NoError(t, err)
	mock.ExpectSet("mysocialapp-session||"+testToken, sessBytes, 0).SetVal("OK")
}

func TestService_Login_admin(t *testing.T) {
	service, api, mock := newTestService(t)

	adminSession := session.Session{ID: 0, Name: "Admin", Email: DefaultAdminEmail, IsAdmin: true}
	expectSessionSet(t, mock, adminSession)

	// the admin bypass must not hit the remote data source
	api.Err = placeholder.ErrUnavailable

	token, sess, err := service.Login(context.Background(), DefaultAdminEmail, DefaultAdminPassword)
	require.NoError(t, err)
	assert.Equal(t, testToken, token)
	assert.Equal(t, &adminSession, sess)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Login_user(t *testing.T) {
	service, _, mock := newTestService(t)

	userSession := session.Session{
		ID: 5, Name: "Chelsey Dietrich",
		Email: "Lucio_Hettinger@annie.ca", Username: "Kamren",
	}
	expectSessionSet(t, mock, userSession)

	// email match is case-insensitive
	token, sess, err := service.Login(context.Background(), "lucio_hettinger@ANNIE.ca", "Kamren")
	require.NoError(t, err)
	assert.Equal(t, testToken, token)
	assert.Equal(t, &userSession, sess)
	assert.False(t, sess.IsAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Login_invalidCredentials(t *testing.T) {
	service, _, _ := newTestService(t)

	// password is the username, case-sensitive
	_, _, err := service.Login(context.Background(), "Lucio_Hettinger@annie.ca", "kamren")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown email
	_, _, err = service.Login(context.Background(), "nobody@annie.ca", "Kamren")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// admin email with wrong secret falls through to the remote users
	_, _, err = service.Login(context.Background(), DefaultAdminEmail, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_validation(t *testing.T) {
	service, api, _ := newTestService(t)

	// validation happens before any remote call
	api.Err = placeholder.ErrUnavailable

	var validationErr *ValidationError

	_, _, err := service.Login(context.Background(), "", "")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "please fill in both fields", validationErr.Message)

	_, _, err = service.Login(context.Background(), "Lucio_Hettinger@annie.ca", "   ")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "please fill in both fields", validationErr.Message)

	_, _, err = service.Login(context.Background(), "not-an-email", "Kamren")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "please enter a valid email address", validationErr.Message)
}

func TestService_Login_remoteDown(t *testing.T) {
	service, api, _ := newTestService(t)
	api.Err = placeholder.ErrUnavailable

	_, _, err := service.Login(context.Background(), "Lucio_Hettinger@annie.ca", "Kamren")
	assert.ErrorIs(t, err, placeholder.ErrUnavailable)
}

func TestService_Logout(t *testing.T) {
	service, _, mock := newTestService(t)

	mock.ExpectDel("mysocialapp-session||" + testToken).SetVal(1)
	require.NoError(t, service.Logout(context.Background(), testToken))
	assert.NoError(t, mock.ExpectationsWereMet())
}
