package healthControllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything that can report whether its backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend reports the catalog service as healthy only while its store answers.
func Backend(p Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			log.Printf("❌ health check: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "ERROR", "message": "Database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Backend service is running"})
	}
}
