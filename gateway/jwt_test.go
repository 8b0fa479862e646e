package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	auth := &JWTAuth{}
	auth.Init("test-secret")

	token, err := auth.GenerateJWT("admin@veteye.pl")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := auth.VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT() error = %v", err)
	}
	if claims.Username != "admin@veteye.pl" {
		t.Errorf("Username = %q, want admin@veteye.pl", claims.Username)
	}
	if claims.Issuer != "veteye-assistant" {
		t.Errorf("Issuer = %q, want veteye-assistant", claims.Issuer)
	}
}

func TestVerifyJWTWrongKey(t *testing.T) {
	issuer := &JWTAuth{}
	issuer.Init("secret-one")
	verifier := &JWTAuth{}
	verifier.Init("secret-two")

	token, err := issuer.GenerateJWT("admin")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	if _, err := verifier.VerifyJWT(token); err == nil {
		t.Error("VerifyJWT() with wrong key should fail")
	}
}

func TestInitEmptySecretGeneratesKey(t *testing.T) {
	auth := &JWTAuth{}
	auth.Init("")
	if len(auth.Key) == 0 {
		t.Error("Init(\"\") should generate a random key")
	}
}

func expiredToken(t *testing.T, auth *JWTAuth) string {
	t.Helper()
	claims := TokenClaims{
		Username: "admin",
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Add(-4 * time.Hour).Unix(),
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
			Issuer:    "veteye-assistant",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(auth.Key)
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}
	return token
}

func authTestRouter(auth *JWTAuth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", auth.AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": c.GetString("username")})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	auth := &JWTAuth{}
	auth.Init("test-secret")
	r := authTestRouter(auth)

	valid, err := auth.GenerateJWT("admin@veteye.pl")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"valid token", valid, http.StatusOK, "admin@veteye.pl"},
		{"missing header", "", http.StatusUnauthorized, "empty header"},
		{"garbage token", "not.a.token", http.StatusUnauthorized, "jwt_malformed"},
		{"expired token", expiredToken(t, auth), http.StatusUnauthorized, "jwt_expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if !bytes.Contains(w.Body.Bytes(), []byte(tt.wantBody)) {
				t.Errorf("body = %s, want substring %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	auth := &JWTAuth{}
	auth.Init("test-secret")
	admin, err := NewAdmin("admin@veteye.pl", "s3cret")
	if err != nil {
		t.Fatalf("NewAdmin() error = %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", auth.LoginHandler(admin))

	login := func(t *testing.T, body any) *httptest.ResponseRecorder {
		t.Helper()
		buf, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(buf))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("success issues a verifiable token", func(t *testing.T) {
		w := login(t, LoginRequest{Email: "admin@veteye.pl", Password: "s3cret"})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var res map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		claims, err := auth.VerifyJWT(res["authorization"])
		if err != nil {
			t.Fatalf("issued token does not verify: %v", err)
		}
		if claims.Username != "admin@veteye.pl" {
			t.Errorf("Username = %q", claims.Username)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := login(t, LoginRequest{Email: "admin@veteye.pl", Password: "wrong"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("wrong email", func(t *testing.T) {
		w := login(t, LoginRequest{Email: "intruder@example.com", Password: "s3cret"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		w := login(t, map[string]string{"email": "admin@veteye.pl"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unconfigured admin", func(t *testing.T) {
		bare := gin.New()
		bare.POST("/login", auth.LoginHandler(Admin{}))
		buf, _ := json.Marshal(LoginRequest{Email: "a@b.pl", Password: "x"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(buf))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		bare.ServeHTTP(w, req)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", w.Code)
		}
	})
}
