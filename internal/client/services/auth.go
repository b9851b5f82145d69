// Package services contains the application services of the jobdeck
// client: authentication and session lifecycle, profile management, and
// job search.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dsmolyakov/jobdeck/internal/client/api"
	"github.com/dsmolyakov/jobdeck/internal/client/guard"
	"github.com/dsmolyakov/jobdeck/internal/client/models"
	"github.com/dsmolyakov/jobdeck/internal/client/session"
	"github.com/dsmolyakov/jobdeck/internal/common"
	"github.com/dsmolyakov/jobdeck/internal/logging"
)

var validate = validator.New()

// Navigator performs top-level navigation. The gateway never navigates;
// all redirect decisions funnel through this service so a 401 produces
// exactly one redirect.
type Navigator interface {
	NavigateTo(route string)
}

// AuthService owns the session lifecycle.
//
// Contract:
//   - Resolve: initial session read; moves the guard out of Unknown.
//   - Login/Register: authenticate, persist the session, navigate to the
//     authenticated landing route.
//   - Logout: best-effort server logout, then local destruction and
//     navigation to login.
//   - HandleAuthFailure: the single place where a gateway 401 becomes
//     "clear session + redirect to login".
type AuthService struct {
	api   *api.Client
	store session.Store
	guard *guard.Guard
	nav   Navigator
	ttl   time.Duration
	log   logging.Logger
}

func NewAuthService(apiClient *api.Client, store session.Store, g *guard.Guard, nav Navigator, log logging.Logger) *AuthService {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &AuthService{
		api:   apiClient,
		store: store,
		guard: g,
		nav:   nav,
		ttl:   session.DefaultTTL,
		log:   log,
	}
}

// Resolve performs the initial session read and resolves the guard state.
// Call once at startup, before any navigation decision.
func (s *AuthService) Resolve(ctx context.Context) (session.Session, error) {
	sess, err := s.store.Read(ctx)
	if err != nil {
		return session.Session{}, err
	}
	s.guard.Resolve(sess.Token != "")
	return sess, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	if err := validate.Var(email, "required,email"); err != nil {
		return models.User{}, errors.Join(common.ErrorInvalidPayload, err)
	}

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}
	return s.establish(ctx, res)
}

// Register creates an account. The backend logs the new user in directly,
// returning the same shape as login.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	if err := validate.Var(email, "required,email"); err != nil {
		return models.User{}, errors.Join(common.ErrorInvalidPayload, err)
	}

	res, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return models.User{}, err
	}
	return s.establish(ctx, res)
}

func (s *AuthService) establish(ctx context.Context, res api.LoginResult) (models.User, error) {
	if err := s.store.Write(ctx, res.AccessToken, res.User, s.ttl); err != nil {
		return models.User{}, err
	}
	s.guard.LoginSucceeded()
	s.nav.NavigateTo(guard.RouteLanding)
	s.log.Info(ctx, "session established", "user", res.User.ID)
	return res.User, nil
}

// Logout destroys the session. The server-side token invalidation is best
// effort; local destruction and the redirect happen regardless.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil && !errors.Is(err, api.ErrUnauthorized) {
		s.log.Warn(ctx, "server-side logout failed", "error", err)
	}
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.guard.Logout()
	s.nav.NavigateTo(guard.RouteLogin)
	return nil
}

// HandleAuthFailure inspects err and, for an authentication failure,
// clears the session and redirects to login. Returns true when the error
// was consumed this way. Authentication failures are never retried.
func (s *AuthService) HandleAuthFailure(ctx context.Context, err error) bool {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false
	}
	if clearErr := s.store.Clear(ctx); clearErr != nil {
		s.log.Error(ctx, "clearing session after 401", "error", clearErr)
	}
	s.guard.Logout()
	s.nav.NavigateTo(guard.RouteLogin)
	s.log.Info(ctx, "session terminated by backend 401")
	return true
}
