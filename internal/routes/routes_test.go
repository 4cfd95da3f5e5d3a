package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AnshRaj112/aih-backend/internal/catalog"
	"github.com/AnshRaj112/aih-backend/internal/handlers"
	"github.com/AnshRaj112/aih-backend/internal/models"
	"github.com/AnshRaj112/aih-backend/internal/services"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singleUser accepts exactly one username/password pair.
type singleUser struct{}

func (singleUser) CreateUser(context.Context, string, string, string) error {
	return services.ErrDuplicateKey
}

func (singleUser) Authenticate(_ context.Context, identifier, password string) (*models.UserSummary, error) {
	if identifier != "asha" {
		return nil, services.ErrUserNotFound
	}
	if password != "pw" {
		return nil, services.ErrInvalidPassword
	}
	return &models.UserSummary{ID: "1", Username: "asha", Email: "asha@example.com"}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cat, err := catalog.Default()
	require.NoError(t, err)

	sessions := services.NewSessionManager(rdb, "secret", time.Hour, false)
	h := handlers.New(singleUser{}, sessions, cat, nil)

	r := chi.NewRouter()
	SetupRoutes(r, h)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLoginMeLogoutFlow(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/login", `{"username":"asha","password":"pw"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	resp = do(t, srv, http.MethodGet, "/me", "", cookies)
	body := readBody(t, resp)
	assert.JSONEq(t, `{"ok":true,"username":"asha"}`, body)

	resp = do(t, srv, http.MethodPost, "/logout", "", cookies)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/me", "", cookies)
	assert.JSONEq(t, `{"ok":false,"username":null}`, readBody(t, resp))
}

func TestRoutesWired(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/register", "", http.StatusOK},
		{http.MethodPost, "/register", `{"email":"asha@example.com","password":"pw"}`, http.StatusFound},
		{http.MethodGet, "/login", "", http.StatusOK},
		{http.MethodPost, "/login", `{"username":"asha","password":"bad"}`, http.StatusUnauthorized},
		{http.MethodPost, "/analyze", `{"symptoms":["Fever"]}`, http.StatusOK},
		{http.MethodGet, "/symptoms", "", http.StatusOK},
		{http.MethodGet, "/symptoms/Fever", "", http.StatusOK},
		{http.MethodGet, "/symptoms/Unknown", "", http.StatusNotFound},
		{http.MethodGet, "/logout", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/analyze", "", http.StatusMethodNotAllowed},
	}
	for _, tc := range tests {
		resp := do(t, srv, tc.method, tc.path, tc.body, nil)
		assert.Equal(t, tc.status, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	var sb strings.Builder
	_, err := io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	return sb.String()
}
