package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/junaidrashid-git/trendy-shop/controllers/product"
	"github.com/junaidrashid-git/trendy-shop/middleware"
	"github.com/junaidrashid-git/trendy-shop/store"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, s store.Store, apiKey string) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(apiKey))
	{
		adminGroup.GET("/products/export", productcontroller.ExportProductsToExcel(s))
	}
}
