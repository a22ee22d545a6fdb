package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jkask/blabber/backend/internal/models"
	"github.com/jkask/blabber/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func signToken(t *testing.T, userID uint, expiresAt time.Time) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func invoke(users repositories.UserRepository, authHeader string) (int, *models.User) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var resolved *models.User
	handler := JWTAuthMiddleware(users, testSecret)(func(c echo.Context) error {
		resolved, _ = c.Get("user").(*models.User)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return he.Code, nil
		}
		return http.StatusInternalServerError, nil
	}
	return rec.Code, resolved
}

func TestJWTAuthResolvesUser(t *testing.T) {
	users := repositories.NewMemoryUserRepository()
	user := &models.User{Name: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, users.CreateUser(user))

	token := signToken(t, user.ID, time.Now().Add(time.Hour))
	code, resolved := invoke(users, "Bearer "+token)
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestJWTAuthRejections(t *testing.T) {
	users := repositories.NewMemoryUserRepository()
	user := &models.User{Name: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, users.CreateUser(user))

	valid := signToken(t, user.ID, time.Now().Add(time.Hour))
	expired := signToken(t, user.ID, time.Now().Add(-time.Hour))
	unknown := signToken(t, user.ID+100, time.Now().Add(time.Hour))

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JwtCustomClaims{
		UserID:           user.ID,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"missing header":   "",
		"malformed header": "Token " + valid,
		"no token":         "Bearer",
		"garbage token":    "Bearer not.a.jwt",
		"expired token":    "Bearer " + expired,
		"unknown identity": "Bearer " + unknown,
		"wrong secret":     "Bearer " + foreign,
	}
	for name, header := range cases {
		code, resolved := invoke(users, header)
		assert.Equal(t, http.StatusUnauthorized, code, name)
		assert.Nil(t, resolved, name)
	}
}
