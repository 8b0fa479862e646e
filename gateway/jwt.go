// Package gateway implements auth and http middleware used across the
// assistant's services.
package gateway

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// JWTAuth provides an encapsulation for jwt auth.
type JWTAuth struct {
	Key []byte
}

// TokenClaims is the assistant's standard claim set.
type TokenClaims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

// Init sets the signing key. An empty secret gets a random key, which
// invalidates issued tokens on restart.
func (j *JWTAuth) Init(secret string) {
	if secret != "" {
		j.Key = []byte(secret)
		return
	}
	key, _ := GenerateAPIKey()
	j.Key = []byte(key)
}

// GenerateJWT issues an HS256 token for the given username, valid for
// three hours.
func (j *JWTAuth) GenerateJWT(username string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Username: username,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(3 * time.Hour).Unix(),
			Issuer:    "veteye-assistant",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	if len(j.Key) == 0 {
		return "", fmt.Errorf("empty jwt key")
	}
	return token.SignedString(j.Key)
}

// VerifyJWT validates the token signature and expiry and returns its
// claims.
func (j *JWTAuth) VerifyJWT(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Key, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// AuthMiddleware guards dashboard endpoints. The username from the
// token claims is stored on the context for handlers downstream.
func (j *JWTAuth) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "empty header was sent", "code": "unauthorized"})
			return
		}
		claims, err := j.VerifyJWT(h)
		if err != nil {
			if e, ok := err.(*jwt.ValidationError); ok && e.Errors&jwt.ValidationErrorExpired != 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token has expired", "code": "jwt_expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Malformed token", "code": "jwt_malformed"})
			return
		}
		c.Set("username", claims.Username)
		c.Next()
	}
}

// GenerateAPIKey returns a random 32-hex-char key.
func GenerateAPIKey() (string, error) {
	key := make([]byte, 16)
	_, err := rand.Read(key)
	return fmt.Sprintf("%x", key), err
}
