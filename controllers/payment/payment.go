package paymentControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/trendy-shop/payment"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Payment service is running"})
}

// ProcessPayment settles a charge. Declines answer 400 with the transaction
// id so the caller can still look the attempt up.
func ProcessPayment(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		tx, err := svc.ProcessPayment(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, payment.ErrInvalidRequest) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			internalError(c, "process payment", err)
			return
		}

		if tx.Status == payment.StatusSuccess {
			c.JSON(http.StatusOK, gin.H{
				"success":       true,
				"message":       "Payment processed successfully",
				"transactionId": tx.ID,
				"amount":        tx.Amount,
				"currency":      tx.Currency,
				"status":        tx.Status,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success":       false,
			"message":       "Payment failed",
			"transactionId": tx.ID,
			"status":        tx.Status,
		})
	}
}

func GetTransaction(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tx, err := svc.GetTransaction(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Transaction not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "transaction": tx})
	}
}

func ListTransactions(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "transactions": svc.ListTransactions()})
	}
}

func Refund(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payment.RefundRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		refund, err := svc.Refund(c.Request.Context(), req)
		switch {
		case errors.Is(err, payment.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Transaction not found"})
		case errors.Is(err, payment.ErrInvalidState), errors.Is(err, payment.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case err != nil:
			internalError(c, "refund", err)
		default:
			c.JSON(http.StatusOK, gin.H{
				"success":  true,
				"message":  "Refund processed successfully",
				"refundId": refund.ID,
				"amount":   refund.Amount,
				"status":   refund.Status,
			})
		}
	}
}

func PaymentMethods(svc *payment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "methods": svc.PaymentMethods()})
	}
}

// internalError hides err from the client. A cancelled request context means
// the client already left, so nothing is written.
func internalError(c *gin.Context, op string, err error) {
	if c.Request.Context().Err() != nil {
		log.Printf("⚠️ %s: client went away: %v", op, err)
		c.Abort()
		return
	}
	log.Printf("❌ %s: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
}
