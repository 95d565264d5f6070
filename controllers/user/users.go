package userControllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/trendy-shop/auth"
	"github.com/junaidrashid-git/trendy-shop/models"
	"github.com/junaidrashid-git/trendy-shop/store"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /register
func Register(s store.Store, tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email, password and name are required"})
			return
		}

		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			serverError(c, "hash password", err)
			return
		}

		user := models.User{
			Email:    normalizeEmail(input.Email),
			Password: hash,
			Name:     strings.TrimSpace(input.Name),
		}
		if err := s.CreateUser(c.Request.Context(), &user); err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
				return
			}
			serverError(c, "register", err)
			return
		}

		token, err := tm.Issue(user.ID, user.Email)
		if err != nil {
			serverError(c, "issue token", err)
			return
		}

		log.Printf("👤 New user registered: %s", user.ID)
		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"token":   token,
			"user":    user.Public(),
		})
	}
}

// POST /login
func Login(s store.Store, tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
			return
		}

		user, err := s.FindUserByEmail(c.Request.Context(), normalizeEmail(input.Email))
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			serverError(c, "login", err)
			return
		}

		// Unknown email and wrong password look the same to the caller.
		hash := ""
		if user != nil {
			hash = user.Password
		}
		if err := auth.CheckPassword(hash, input.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}

		token, err := tm.Issue(user.ID, user.Email)
		if err != nil {
			serverError(c, "issue token", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   token,
			"user":    user.Public(),
		})
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func serverError(c *gin.Context, op string, err error) {
	log.Printf("❌ %s: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
