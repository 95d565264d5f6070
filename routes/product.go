package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/junaidrashid-git/trendy-shop/controllers/product"
	"github.com/junaidrashid-git/trendy-shop/store"
)

func SetupProductRoutes(r *gin.Engine, s store.Store) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(s))
		products.GET("/:id", productcontroller.GetProductByID(s))
	}
}
