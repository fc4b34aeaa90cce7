package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authpkg "github.com/cornellb28/orderbbs-app/auth"
)

type AuthHandler struct {
	auth authpkg.Service
}

func NewAuthHandler(auth authpkg.Service) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p loginPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		principal, err := h.auth.Login(ctx, authpkg.LoginRequest{Email: p.Email, Password: p.Password})
		if errors.Is(err, authpkg.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
		c.JSON(http.StatusOK, principal)
	}
}
