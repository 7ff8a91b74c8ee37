package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kaan/markbook/internal/app/models"
	"github.com/kaan/markbook/internal/pkg/auth"
)

func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		SessionExp:  time.Hour,
		TokenIssuer: "markbook-test",
	})
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	admin := router.Group("/admin")
	admin.Use(m.SessionAuth(), m.RoleRequired(models.RoleAdmin))
	admin.GET("/ping", func(c *gin.Context) {
		id, _ := SessionUserID(c)
		c.JSON(http.StatusOK, gin.H{"userID": id})
	})

	student := router.Group("/student")
	student.Use(m.SessionAuth(), m.RoleRequired(models.RoleStudent))
	student.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, jwtService
}

func doRequest(router *gin.Engine, path, bearer, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSessionAuth_NoToken(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, "/admin/ping", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestSessionAuth_InvalidToken(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, "/admin/ping", "garbage", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRoleRequired_AdminToken(t *testing.T) {
	router, jwtService := newTestRouter(t)

	token, _, err := jwtService.GenerateSessionToken(models.RoleAdmin, 1)
	if err != nil {
		t.Fatal(err)
	}

	if w := doRequest(router, "/admin/ping", token, ""); w.Code != http.StatusOK {
		t.Errorf("admin on /admin: status = %d, want 200", w.Code)
	}
	if w := doRequest(router, "/student/ping", token, ""); w.Code != http.StatusForbidden {
		t.Errorf("admin on /student: status = %d, want 403", w.Code)
	}
}

func TestRoleRequired_StudentTokenRejectedOnAdminRoutes(t *testing.T) {
	router, jwtService := newTestRouter(t)

	token, _, err := jwtService.GenerateSessionToken(models.RoleStudent, 5)
	if err != nil {
		t.Fatal(err)
	}

	if w := doRequest(router, "/admin/ping", token, ""); w.Code != http.StatusForbidden {
		t.Errorf("student on /admin: status = %d, want 403", w.Code)
	}
	if w := doRequest(router, "/student/ping", token, ""); w.Code != http.StatusOK {
		t.Errorf("student on /student: status = %d, want 200", w.Code)
	}
}

func TestSessionAuth_CookieAccepted(t *testing.T) {
	router, jwtService := newTestRouter(t)

	token, _, err := jwtService.GenerateSessionToken(models.RoleAdmin, 1)
	if err != nil {
		t.Fatal(err)
	}

	if w := doRequest(router, "/admin/ping", "", token); w.Code != http.StatusOK {
		t.Errorf("cookie session: status = %d, want 200", w.Code)
	}
}

func TestSessionAuth_ExpiredToken(t *testing.T) {
	router, _ := newTestRouter(t)

	expired := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		SessionExp:  -time.Minute,
		TokenIssuer: "markbook-test",
	})
	token, _, err := expired.GenerateSessionToken(models.RoleAdmin, 1)
	if err != nil {
		t.Fatal(err)
	}

	if w := doRequest(router, "/admin/ping", token, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expired token: status = %d, want 401", w.Code)
	}
}
