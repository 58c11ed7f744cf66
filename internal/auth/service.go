package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mysocialapp/backend/internal/placeholder"
	"github.com/mysocialapp/backend/internal/session"
	"github.com/mysocialapp/backend/pkg"

	log "github.com/sirupsen/logrus"
)

// emailRegex demands the local@domain.tld shape, nothing more.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	DefaultAdminEmail    = "admin@admin.com"
	DefaultAdminPassword = "admin123"
)

// Admin is the fixed administrator identity. Logging in with these
// credentials never touches the remote data source.
type Admin struct {
	Email    string
	Password string
}

type usersFetcher interface {
	Users(ctx context.Context) ([]placeholder.User, error)
}

// Service validates credentials against the remote user collection and
// owns the single write path into the session store.
//
// There is no real authentication here: regular users sign in with
// their remote email as identity and their remote username as password,
// in plaintext. That mirrors the product behavior and has not been
// security reviewed.
type Service struct {
	admin    Admin
	users    usersFetcher
	sessions *session.Store
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(admin Admin, users usersFetcher, sessions *session.Store) *Service {
	return &Service{
		admin:          admin,
		users:          users,
		sessions:       sessions,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login checks the given credentials and, on success only, writes a new
// session to the store and returns its token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *session.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return "", nil, &ValidationError{Message: "please fill in both fields"}
	}
	if !emailRegex.MatchString(email) {
		return "", nil, &ValidationError{Message: "please enter a valid email address"}
	}

	if email == strings.ToLower(s.admin.Email) && password == s.admin.Password {
		adminSession := &session.Session{
			ID:      0,
			Name:    "Admin",
			Email:   s.admin.Email,
			IsAdmin: true,
		}
		token, err := s.storeSession(ctx, adminSession)
		if err != nil {
			return "", nil, err
		}
		log.Tracef("admin login success")
		return token, adminSession, nil
	}

	users, err := s.users.Users(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("fetch users: %w", err)
	}

	for _, user := range users {
		if !strings.EqualFold(user.Email, email) {
			continue
		}
		if password != user.Username {
			break
		}
		userSession := &session.Session{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Username: user.Username,
			IsAdmin:  false,
		}
		token, err := s.storeSession(ctx, userSession)
		if err != nil {
			return "", nil, err
		}
		log.Tracef("login success for user %d", user.ID)
		return token, userSession, nil
	}

	return "", nil, ErrInvalidCredentials
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Clear(ctx, token)
}

func (s *Service) storeSession(ctx context.Context, sess *session.Session) (string, error) {
	token, err := s.RandStringFunc(35)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	if err := s.sessions.Set(ctx, token, *sess); err != nil {
		return "", err
	}
	return token, nil
}
