package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/glams-api/internal/service"
)

type AuthHTTP struct {
	S service.AuthService
}

func NewAuthHTTP(s service.AuthService) *AuthHTTP { return &AuthHTTP{S: s} }

func (h *AuthHTTP) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.Password == "" {
		fail(c, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	token, admin, err := h.S.Login(in.Email, in.Password)
	if err != nil {
		failFor(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    admin,
	})
}

func (h *AuthHTTP) Profile(c *gin.Context) {
	claims, ok := adminClaims(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Access token is required", nil)
		return
	}
	admin, err := h.S.Profile(claims.ID)
	if err != nil {
		failFor(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": admin})
}
