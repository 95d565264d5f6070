package productcontroller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/trendy-shop/store"
)

// GetProductByID returns a single product.
// URL param: /products/:id
func GetProductByID(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := s.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			} else {
				log.Printf("❌ get product: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
