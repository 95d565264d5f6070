package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/trendy-shop/auth"
	userControllers "github.com/junaidrashid-git/trendy-shop/controllers/user"
	"github.com/junaidrashid-git/trendy-shop/store"
)

// SetupAuthRoutes registers /register and /login.
func SetupAuthRoutes(r *gin.Engine, s store.Store, tm *auth.TokenManager) {
	r.POST("/register", userControllers.Register(s, tm))
	r.POST("/login", userControllers.Login(s, tm))
}
