package api

import (
	"banking_api/internal/domain"  // Domain errors
	"banking_api/internal/service" // Business logic
	"errors"                       // Error matching
	"net/http"                     // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest is the JSON body for user registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// TokenRequest is the form body for the token endpoint
// (OAuth2 password flow: username and password as form fields).
type TokenRequest struct {
	Username string `form:"username" binding:"required"` // Username must be provided
	Password string `form:"password" binding:"required"` // Password must be provided
}

// UserResponse is the public view of a user: no password material, ever.
type UserResponse struct {
	ID       uint   `json:"id"`       // User ID
	Username string `json:"username"` // Username
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"` // Signed JWT
	TokenType   string `json:"token_type"`   // Always "bearer"
}

// RegisterHandler creates a new user account (the credential, not the money
// account — that appears on first deposit).
func RegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := auth.Register(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrUsernameTaken) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Username already registered"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"request_id": requestID(c), // Request ID
				"username":   req.Username, // Username
				"error":      err.Error(),  // Error message
			}).Error("Registration failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}
		c.JSON(http.StatusCreated, UserResponse{ID: user.ID, Username: user.Username})
	}
}

// TokenHandler authenticates a user and returns a bearer token.
func TokenHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TokenRequest // Bind form request to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		token, err := auth.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				c.Header("WWW-Authenticate", "Bearer")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"request_id": requestID(c), // Request ID
				"username":   req.Username, // Username
				"error":      err.Error(),  // Error message
			}).Error("Login failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
	}
}
