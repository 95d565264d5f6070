package routes

import (
	"github.com/gin-gonic/gin"
	paymentControllers "github.com/junaidrashid-git/trendy-shop/controllers/payment"
	"github.com/junaidrashid-git/trendy-shop/payment"
)

// SetupPaymentRoutes wires the payment simulator. None of its routes are
// authenticated.
func SetupPaymentRoutes(r *gin.Engine, svc *payment.Service) {
	r.GET("/health", paymentControllers.Health)
	r.POST("/process-payment", paymentControllers.ProcessPayment(svc))
	r.GET("/transaction/:id", paymentControllers.GetTransaction(svc))
	r.GET("/transactions", paymentControllers.ListTransactions(svc))
	r.POST("/refund", paymentControllers.Refund(svc))
	r.GET("/payment-methods", paymentControllers.PaymentMethods(svc))
}
