package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dsmolyakov/jobdeck/internal/client/api"
	"github.com/dsmolyakov/jobdeck/internal/client/guard"
	"github.com/dsmolyakov/jobdeck/internal/client/models"
	"github.com/dsmolyakov/jobdeck/internal/client/repositories/metadata"
	"github.com/dsmolyakov/jobdeck/internal/client/session"
	"github.com/dsmolyakov/jobdeck/internal/cryptox"

	_ "modernc.org/sqlite"
)

var signingKey = []byte("test-signing-key")

type recordingNav struct {
	routes []string
}

func (n *recordingNav) NavigateTo(route string) {
	n.routes = append(n.routes, route)
}

func sessionStore(t *testing.T) session.Store {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)

	secret, salt, err := cryptox.LoadOrCreateSecret(filepath.Join(t.TempDir(), "device.key"))
	require.NoError(t, err)
	return session.NewSQLiteStore(metadata.NewSQLiteRepository(db), cryptox.DeriveSealKey(secret, salt), nil)
}

func mintToken(t *testing.T, subject string, expiresIn time.Duration) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	})
	signed, err := tok.SignedString(signingKey)
	require.NoError(t, err)
	return signed
}

// requireAuth rejects requests whose bearer token is missing, malformed,
// or expired, the way the backend does.
func requireAuth(w http.ResponseWriter, r *http.Request) bool {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	_, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid or expired token"}`))
		return false
	}
	return true
}

func authFixture(t *testing.T, backend http.Handler) (*AuthService, session.Store, *guard.Guard, *recordingNav, *api.Client) {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	store := sessionStore(t)
	g := guard.New()
	nav := &recordingNav{}
	client := api.New(srv.URL, store, nil)
	return NewAuthService(client, store, g, nav, nil), store, g, nav, client
}

func TestLogin_EstablishesSessionAndNavigates(t *testing.T) {
	token := mintToken(t, "u1", time.Hour)
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+api.PathLogin, func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Email != "jo@example.com" || creds.Password != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(api.LoginResult{
			AccessToken: token,
			User:        models.User{ID: "u1", Name: "Jo", Email: "jo@example.com"},
		})
	})

	svc, store, g, nav, _ := authFixture(t, mux)
	ctx := context.Background()

	user, err := svc.Login(ctx, "jo@example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)

	sess, err := store.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, token, sess.Token)
	require.NotNil(t, sess.User)
	require.Equal(t, "Jo", sess.User.Name)

	require.Equal(t, guard.StateAuthenticated, g.State())
	require.Equal(t, []string{guard.RouteLanding}, nav.routes)
}

func TestLogin_BadEmailNeverReachesNetwork(t *testing.T) {
	svc, _, _, nav, _ := authFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := svc.Login(context.Background(), "not-an-email", "x")
	require.Error(t, err)
	require.Empty(t, nav.routes)
}

func TestLogin_RejectedCredentialsLeaveNoSession(t *testing.T) {
	svc, store, g, nav, _ := authFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	ctx := context.Background()

	_, err := svc.Login(ctx, "jo@example.com", "wrong")
	require.ErrorIs(t, err, api.ErrUnauthorized)

	sess, err := store.Read(ctx)
	require.NoError(t, err)
	require.Empty(t, sess.Token)
	require.NotEqual(t, guard.StateAuthenticated, g.State())
	require.Empty(t, nav.routes)
}

func TestExpiredToken_ClearsSessionAndRedirectsOnce(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+api.PathProfile, func(w http.ResponseWriter, r *http.Request) {
		if !requireAuth(w, r) {
			return
		}
		json.NewEncoder(w).Encode(models.User{ID: "u1"})
	})

	svc, store, g, nav, client := authFixture(t, mux)
	ctx := context.Background()

	// A session persisted in a previous run, whose token has since expired
	// server-side.
	expired := mintToken(t, "u1", -time.Hour)
	require.NoError(t, store.Write(ctx, expired, models.User{ID: "u1"}, session.DefaultTTL))

	_, err := svc.Resolve(ctx)
	require.NoError(t, err)
	require.Equal(t, guard.StateAuthenticated, g.State(), "local expiry check passed; backend is the judge")

	_, err = client.Profile(ctx)
	require.ErrorIs(t, err, api.ErrUnauthorized)

	require.True(t, svc.HandleAuthFailure(ctx, err))

	sess, err := store.Read(ctx)
	require.NoError(t, err)
	require.Empty(t, sess.Token, "session must be destroyed after a backend 401")
	require.Equal(t, guard.StateUnauthenticated, g.State())
	require.Equal(t, []string{guard.RouteLogin}, nav.routes, "exactly one redirect")
}

func TestHandleAuthFailure_IgnoresOtherErrors(t *testing.T) {
	svc, store, _, nav, _ := authFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, mintToken(t, "u1", time.Hour), models.User{ID: "u1"}, session.DefaultTTL))

	handled := svc.HandleAuthFailure(ctx, &api.APIError{Status: http.StatusInternalServerError, Message: "boom"})
	require.False(t, handled)

	sess, err := store.Read(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token, "non-auth errors never destroy the session")
	require.Empty(t, nav.routes)
}

func TestLogout_DestroysSessionEvenWhenServerFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+api.PathLogout, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	svc, store, g, nav, _ := authFixture(t, mux)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, mintToken(t, "u1", time.Hour), models.User{ID: "u1"}, session.DefaultTTL))
	g.Resolve(true)

	require.NoError(t, svc.Logout(ctx))

	sess, err := store.Read(ctx)
	require.NoError(t, err)
	require.Empty(t, sess.Token)
	require.Equal(t, guard.StateUnauthenticated, g.State())
	require.Equal(t, []string{guard.RouteLogin}, nav.routes)
}

func TestRegister_LogsInDirectly(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+api.PathSignup, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.LoginResult{
			AccessToken: mintToken(t, "u2", time.Hour),
			User:        models.User{ID: "u2", Name: "New", Email: "new@example.com"},
		})
	})

	svc, store, g, nav, _ := authFixture(t, mux)
	ctx := context.Background()

	user, err := svc.Register(ctx, "New", "new@example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "u2", user.ID)

	sess, err := store.Read(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)
	require.Equal(t, guard.StateAuthenticated, g.State())
	require.Equal(t, []string{guard.RouteLanding}, nav.routes)
}
