package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/trendy-shop/auth"
	healthControllers "github.com/junaidrashid-git/trendy-shop/controllers/health"
	orderControllers "github.com/junaidrashid-git/trendy-shop/controllers/order"
	"github.com/junaidrashid-git/trendy-shop/store"
)

// Backend holds what the catalog service routes need.
type Backend struct {
	Store       store.Store
	Tokens      *auth.TokenManager
	Orders      *orderControllers.Controller
	AdminAPIKey string
}

// NewRouter returns a gin engine with request logging, recovery and a CORS
// policy open to any origin.
func NewRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:   []string{"Content-Length", "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	}))
	return r
}

// SetupRoutes is the single entry point that wires up the catalog service.
func SetupRoutes(r *gin.Engine, b Backend) {
	r.GET("/health", healthControllers.Backend(b.Store))

	// 1️⃣ Public auth routes
	SetupAuthRoutes(r, b.Store, b.Tokens)

	// 2️⃣ Public catalog
	SetupProductRoutes(r, b.Store)

	// 3️⃣ Orders (JWT-protected)
	SetupOrderRoutes(r, b.Orders, b.Tokens)

	// 4️⃣ Admin routes (API-Key-protected)
	SetupAdminRoutes(r, b.Store, b.AdminAPIKey)
}
