package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// staticTokens is a TokenSource returning a fixed token.
type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(ctx context.Context) (string, error) { return s.token, s.err }

// failNTransport fails the first n round trips at transport level, then
// delegates to the default transport.
type failNTransport struct {
	n        int32
	attempts int32
}

func (f *failNTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	attempt := atomic.AddInt32(&f.attempts, 1)
	if attempt <= f.n {
		return nil, errors.New("connection refused")
	}
	return http.DefaultTransport.RoundTrip(req)
}

func TestDo_InjectsBearerAndContentType(t *testing.T) {
	var gotAuth, gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		require.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens{token: "tok123"}, nil)
	err := c.Do(context.Background(), Request{Path: "/x", Body: map[string]string{"a": "b"}}, nil)
	require.NoError(t, err)
	require.Equal(t, "Bearer tok123", gotAuth)
	require.Equal(t, "application/json", gotCT)
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens{}, nil)
	require.NoError(t, c.Do(context.Background(), Request{Path: "/x"}, nil))
	require.Empty(t, gotAuth)
}

func TestDo_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	err := c.Do(context.Background(), Request{Path: "/x"}, nil)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestDo_ErrorBodyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"degree is required"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	err := c.Do(context.Background(), Request{Path: "/x"}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "degree is required", apiErr.Message)
}

func TestDo_ErrorBodyNotJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>boom</html>`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	err := c.Do(context.Background(), Request{Path: "/x"}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "request failed", apiErr.Message)
}

func TestDo_AlreadyAppliedMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"You have already applied for this job"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	err := c.Do(context.Background(), Request{Path: "/applications", Body: map[string]string{"jobId": "j1"}}, nil)
	require.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestDo_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	c := New(srv.URL, nil, nil)
	c.SetGetRetries(0)
	err := c.Do(context.Background(), Request{Path: "/x"}, nil)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_GetRetriesTransportFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tr := &failNTransport{n: 2}
	c := New(srv.URL, nil, nil)
	c.SetHTTPClient(&http.Client{Transport: tr})

	var out map[string]bool
	require.NoError(t, c.Do(context.Background(), Request{Path: "/x"}, &out))
	require.True(t, out["ok"])
	require.EqualValues(t, 3, atomic.LoadInt32(&tr.attempts))
}

func TestDo_MutationNotRetried(t *testing.T) {
	tr := &failNTransport{n: 10}
	c := New("http://127.0.0.1:0", nil, nil)
	c.SetHTTPClient(&http.Client{Transport: tr})

	err := c.Do(context.Background(), Request{Path: "/x", Body: map[string]string{"a": "b"}}, nil)
	require.ErrorIs(t, err, ErrUnavailable)
	require.EqualValues(t, 1, atomic.LoadInt32(&tr.attempts))
}

func TestDo_MultipartDelegatesContentType(t *testing.T) {
	var gotCT, gotFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		f, _, err := r.FormFile("cv")
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		gotFile = string(data)
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	err := c.Do(context.Background(), Request{
		Path:      "/profile/cv",
		Multipart: &Multipart{Field: "cv", FileName: "cv.pdf", Content: strings.NewReader("pdf-bytes")},
	}, nil)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(gotCT, "multipart/form-data; boundary="), "content type %q", gotCT)
	require.Equal(t, "pdf-bytes", gotFile)
}

func TestLogin_DecodesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, PathLogin, r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"email":"a@b.com","password":"secret"}`, string(body))
		w.Write([]byte(`{"accessToken":"tok123","user":{"id":"u1","name":"Jo","email":"a@b.com"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	res, err := c.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok123", res.AccessToken)
	require.Equal(t, "u1", res.User.ID)
}
