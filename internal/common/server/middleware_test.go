package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/binduu04/fleet-management-assignment/internal/common/auth"
	"github.com/binduu04/fleet-management-assignment/internal/common/authz"
	"github.com/binduu04/fleet-management-assignment/internal/common/config"
)

func TestJWTAuthMiddlewareAndRequireAction(t *testing.T) {
	authCfg := config.AuthConfig{
		Enabled:     true,
		JWTSecret:   "test-secret",
		Issuer:      "fleet-management",
		Audience:    "fleet-management",
		PublicPaths: []string{"/open"},
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(authCfg, nil))
	r.GET("/open", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/users", RequireAction(authz.ActionUserList), func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			t.Fatalf("missing actor in context")
		}
		c.String(http.StatusOK, actor.ID)
	})

	// 免鉴权路径直接放行
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for public path, got %d", w.Code)
	}

	// 无 token 拒绝
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	// admin token 放行
	adminToken, _, err := auth.GenerateAccessToken(authCfg, "u-admin", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d body=%s", w.Code, w.Body.String())
	}
	if w.Body.String() != "u-admin" {
		t.Fatalf("subject mismatch: %s", w.Body.String())
	}

	// technician 角色被 RBAC 拒绝
	techToken, _, err := auth.GenerateAccessToken(authCfg, "u-tech", "technician", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+techToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for technician, got %d", w.Code)
	}

	// 签名不对的 token 拒绝
	otherCfg := authCfg
	otherCfg.JWTSecret = "other-secret"
	badToken, _, err := auth.GenerateAccessToken(otherCfg, "u-admin", "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+badToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad signature, got %d", w.Code)
	}
}
