package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/trendy-shop/auth"
	orderControllers "github.com/junaidrashid-git/trendy-shop/controllers/order"
	"github.com/junaidrashid-git/trendy-shop/middleware"
)

func SetupOrderRoutes(r *gin.Engine, oc *orderControllers.Controller, tm *auth.TokenManager) {
	// websocket endpoint for real-time order updates; browsers pass ?token=
	r.GET("/orders/ws", middleware.ValidateQueryToken(tm), oc.Hub().Serve)

	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(tm))
	{
		orders.POST("", oc.CreateOrder())
		orders.GET("", oc.GetUserOrders())
		orders.GET("/:id", oc.GetOrderByID())
		orders.POST("/:id/pay", oc.PayOrder())
	}
}
