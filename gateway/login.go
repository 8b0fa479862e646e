package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Admin holds the configured dashboard credentials. PasswordHash is a
// bcrypt hash; a plaintext ADMIN_PASSWORD gets hashed at startup.
type Admin struct {
	Email        string
	PasswordHash []byte
}

// NewAdmin hashes the configured password.
func NewAdmin(email, password string) (Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 8)
	if err != nil {
		return Admin{}, err
	}
	return Admin{Email: email, PasswordHash: hash}, nil
}

// LoginHandler authenticates the dashboard admin and issues a JWT.
func (j *JWTAuth) LoginHandler(admin Admin) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "code": "bad_request"})
			return
		}
		if admin.Email == "" || len(admin.PasswordHash) == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "admin auth not configured", "code": "admin_auth_not_configured"})
			return
		}
		if req.Email != admin.Email || bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "wrong email or password", "code": "unauthorized"})
			return
		}
		token, err := j.GenerateJWT(req.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error(), "code": "server_error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"authorization": token})
	}
}
