package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jwtpkg "steprally/grouphub/pkg/jwt"
)

func newAuthRouter(manager *jwtpkg.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", JWTAuth(manager), func(c *gin.Context) {
		claims := c.MustGet(ContextKeyUserClaims).(*jwtpkg.Claims)
		c.String(http.StatusOK, claims.Subject)
	})
	return r
}

func TestJWTAuthAcceptsMintedToken(t *testing.T) {
	manager := jwtpkg.NewManager("test-signing-key", "steprally-auth", time.Minute)
	router := newAuthRouter(manager)

	userID := uuid.New()
	token, err := manager.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Body.String(); got != userID.String() {
		t.Errorf("expected subject %s in context, got %q", userID, got)
	}
}

func TestJWTAuthRejections(t *testing.T) {
	manager := jwtpkg.NewManager("test-signing-key", "steprally-auth", time.Minute)
	router := newAuthRouter(manager)

	otherKey := jwtpkg.NewManager("another-key", "steprally-auth", time.Minute)
	foreign, err := otherKey.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	otherIssuer := jwtpkg.NewManager("test-signing-key", "someone-else", time.Minute)
	wrongIssuer, err := otherIssuer.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	expiredManager := jwtpkg.NewManager("test-signing-key", "steprally-auth", -time.Minute)
	expired, err := expiredManager.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong signing key", "Bearer " + foreign},
		{"wrong issuer", "Bearer " + wrongIssuer},
		{"expired token", "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d: %s", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), "\"code\":401") {
				t.Errorf("expected envelope code 401, got %s", rec.Body.String())
			}
		})
	}
}
