package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"academy_backend/internal/config"
	"academy_backend/internal/model"
	"academy_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: testSecret, Issuer: "auth.test"}}
}

func token(t *testing.T, userID uint, role model.UserRole) string {
	t.Helper()
	tok, err := util.GenerateJWT(userID, role, "u@example.org", testSecret, "auth.test", time.Hour)
	require.NoError(t, err)
	return tok
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"viewer": util.ViewerID(c)})
	})
	r.GET("/x", handlers...)
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(testConfig()))

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer garbage").Code)

	w := do(r, "Bearer "+token(t, 9, model.Student))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"viewer":9}`, w.Body.String())
}

func TestTryAuthMiddlewareAllowsAnonymous(t *testing.T) {
	r := newRouter(TryAuthMiddleware(testConfig()))

	w := do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"viewer":0}`, w.Body.String())

	w = do(r, "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"viewer":0}`, w.Body.String())

	w = do(r, "Bearer "+token(t, 4, model.Student))
	assert.JSONEq(t, `{"viewer":4}`, w.Body.String())
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(testConfig()), RoleMiddleware(model.Admin))

	assert.Equal(t, http.StatusForbidden, do(r, "Bearer "+token(t, 4, model.Student)).Code)
	assert.Equal(t, http.StatusOK, do(r, "Bearer "+token(t, 1, model.Admin)).Code)
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newRouter(RequestID(), RequestLogger())

	w := do(r, "")
	assert.NotEmpty(t, w.Header().Get(util.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(util.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(util.RequestIDHeader))
}
