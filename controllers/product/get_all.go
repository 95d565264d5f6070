package productcontroller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/trendy-shop/store"
)

// GetProducts returns the whole catalog. There is no paging.
func GetProducts(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := s.ListProducts(c.Request.Context())
		if err != nil {
			log.Printf("❌ list products: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
