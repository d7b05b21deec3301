package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory_console/internal/models"
	"github.com/Skotchmaster/inventory_console/internal/session"
)

func testSessions() *Sessions {
	return &Sessions{Key: session.DefaultKey, Secret: []byte("test-secret")}
}

// sessionCookie signs id the same way a sign-in response would.
func sessionCookie(t *testing.T, s *Sessions, id models.Identity) *http.Cookie {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, s.StoreFor(c).Save(id))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestRequireLogin_RedirectsWithoutSession(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec)

	called := false
	h := RequireLogin(testSessions())(func(echo.Context) error { called = true; return nil })

	require.NoError(t, h(c))
	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, SignInPath, rec.Header().Get(echo.HeaderLocation))
}

func TestRequireLogin_RejectsTamperedCookie(t *testing.T) {
	s := testSessions()
	ck := sessionCookie(t, s, models.Identity{ID: "u1", Username: "alice", Role: models.RoleUser})
	ck.Value += "x"

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(ck)
	rec := httptest.NewRecorder()

	h := RequireLogin(s)(func(echo.Context) error { t.Fatal("handler must not run"); return nil })
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRequireLogin_PassesIdentity(t *testing.T) {
	s := testSessions()
	want := models.Identity{ID: "u1", Username: "alice", Role: models.RoleAdmin}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(sessionCookie(t, s, want))
	c := e.NewContext(req, httptest.NewRecorder())

	var got models.Identity
	h := RequireLogin(s)(func(c echo.Context) error {
		got, _ = IdentityFrom(c)
		return nil
	})
	require.NoError(t, h(c))
	assert.Equal(t, want, got)
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name   string
		id     *models.Identity
		status int
	}{
		{"admin", &models.Identity{ID: "u1", Role: models.RoleAdmin}, 0},
		{"user", &models.Identity{ID: "u2", Role: models.RoleUser}, http.StatusForbidden},
		{"anonymous", nil, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/dashboard/products", nil), httptest.NewRecorder())
			if tc.id != nil {
				setIdentity(c, *tc.id)
			}
			called := false
			err := RequireAdmin(func(echo.Context) error { called = true; return nil })(c)
			if tc.status == 0 {
				require.NoError(t, err)
				assert.True(t, called)
				return
			}
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tc.status, he.Code)
			assert.False(t, called)
		})
	}
}
