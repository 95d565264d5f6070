package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/trendy-shop/events"
	"github.com/junaidrashid-git/trendy-shop/middleware"
	"github.com/junaidrashid-git/trendy-shop/models"
	"github.com/junaidrashid-git/trendy-shop/payclient"
	"github.com/junaidrashid-git/trendy-shop/payment"
	"github.com/junaidrashid-git/trendy-shop/store"
	"github.com/shopspring/decimal"
)

// -------- Request Structs --------
type OrderItemInput struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Price     float64 `json:"price" binding:"gte=0"`
}

type CreateOrderRequest struct {
	Products []OrderItemInput `json:"products" binding:"required,min=1,dive"`
	Total    float64          `json:"total" binding:"gte=0"`
}

type PayOrderRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	Currency      string `json:"currency"`
}

// Payer charges an order through the payment service.
type Payer interface {
	ProcessPayment(ctx context.Context, req payment.PaymentRequest) (*payclient.Result, error)
}

// Controller serves the order routes. Every route expects ValidateToken to
// have run.
type Controller struct {
	store    store.Store
	events   events.Publisher
	hub      *Hub
	payments Payer

	// paying holds the ids of orders with a charge in flight.
	paying sync.Map
}

func NewController(s store.Store, payments Payer, publisher events.Publisher, hub *Hub) *Controller {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if hub == nil {
		hub = NewHub()
	}
	return &Controller{store: s, events: publisher, hub: hub, payments: payments}
}

func (oc *Controller) Hub() *Hub { return oc.hub }

// -------- Helpers --------

func money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// buildItems checks every line against the live catalog and the claimed total
// against the lines.
func buildItems(input CreateOrderRequest, catalog map[string]models.Product) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(input.Products))
	sum := decimal.Zero
	for _, line := range input.Products {
		product, ok := catalog[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("Product not found: %s", line.ProductID)
		}
		if !money(line.Price).Equal(money(product.Price)) {
			return nil, fmt.Errorf("Price mismatch for product: %s", line.ProductID)
		}
		sum = sum.Add(money(product.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}
	if !sum.Equal(money(input.Total)) {
		return nil, fmt.Errorf("Order total %s does not match line items total %s",
			money(input.Total).StringFixed(2), sum.StringFixed(2))
	}
	return items, nil
}

func productIDs(lines []OrderItemInput) []string {
	seen := make(map[string]bool, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}
	return ids
}

func serverError(c *gin.Context, op string, err error) {
	log.Printf("❌ %s: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

// notify publishes the event and pushes the order to the owner's sockets.
func (oc *Controller) notify(topic string, order *models.Order) {
	oc.events.Publish(topic, order.ID, order)
	oc.hub.Broadcast(order.UserID, OrderUpdate{Type: topic, Order: order})
}

// -------- Handlers --------

// POST /orders
func (oc *Controller) CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Order needs at least one product with a positive quantity"})
			return
		}

		ctx := c.Request.Context()
		catalog, err := oc.store.GetProducts(ctx, productIDs(req.Products))
		if err != nil {
			serverError(c, "create order", err)
			return
		}
		items, err := buildItems(req, catalog)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		order := models.Order{
			UserID: middleware.UserID(c),
			Items:  items,
			Total:  money(req.Total).InexactFloat64(),
			Status: models.OrderStatusPending,
		}
		if err := oc.store.CreateOrder(ctx, &order); err != nil {
			serverError(c, "create order", err)
			return
		}
		for i := range order.Items {
			p := catalog[order.Items[i].ProductID]
			order.Items[i].Product = &p
		}

		oc.notify(events.TopicOrderCreated, &order)
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order created successfully",
			"order":   order,
		})
	}
}

// GET /orders
func (oc *Controller) GetUserOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := oc.store.ListOrdersByUser(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			serverError(c, "list orders", err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id
func (oc *Controller) GetOrderByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := oc.store.GetOrder(c.Request.Context(), middleware.UserID(c), c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		if err != nil {
			serverError(c, "get order", err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// POST /orders/:id/pay charges the order total and records the outcome on the
// order. Only pending or previously declined orders can be paid.
func (oc *Controller) PayOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PayOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Payment method is required"})
			return
		}

		ctx := c.Request.Context()
		userID := middleware.UserID(c)
		orderID := c.Param("id")
		if _, err := oc.store.GetOrder(ctx, userID, orderID); errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		} else if err != nil {
			serverError(c, "pay order", err)
			return
		}
		if _, busy := oc.paying.LoadOrStore(orderID, struct{}{}); busy {
			c.JSON(http.StatusConflict, gin.H{"message": "Payment already in progress"})
			return
		}
		defer oc.paying.Delete(orderID)

		// Read again while holding the slot so a charge that finished
		// in between is seen.
		order, err := oc.store.GetOrder(ctx, userID, orderID)
		if err != nil {
			serverError(c, "pay order", err)
			return
		}
		if !order.Status.Payable() {
			c.JSON(http.StatusConflict, gin.H{"message": "Order already paid"})
			return
		}

		result, err := oc.payments.ProcessPayment(ctx, payment.PaymentRequest{
			Amount:        order.Total,
			Currency:      strings.ToUpper(strings.TrimSpace(req.Currency)),
			PaymentMethod: req.PaymentMethod,
			OrderID:       order.ID,
		})
		var rejected *payclient.RejectedError
		switch {
		case errors.As(err, &rejected):
			c.JSON(http.StatusBadRequest, gin.H{"message": rejected.Message})
			return
		case err != nil:
			log.Printf("❌ pay order %s: %v", order.ID, err)
			c.JSON(http.StatusBadGateway, gin.H{"message": "Payment service unavailable"})
			return
		}

		// The charge has happened; record it even if the client went away.
		recordCtx := context.WithoutCancel(ctx)
		status, topic := models.OrderStatusPaid, events.TopicOrderPaid
		if !result.Approved() {
			status, topic = models.OrderStatusPaymentFailed, events.TopicOrderPaymentFailed
		}
		err = oc.store.UpdateOrderPayment(recordCtx, order.ID, status, result.TransactionID)
		if errors.Is(err, store.ErrNotPayable) {
			log.Printf("⚠️ order %s changed during payment, transaction %s not recorded", order.ID, result.TransactionID)
			c.JSON(http.StatusConflict, gin.H{"message": "Order already paid"})
			return
		}
		if err != nil {
			serverError(c, "record payment", err)
			return
		}
		updated, err := oc.store.GetOrder(recordCtx, userID, order.ID)
		if err != nil {
			serverError(c, "reload order", err)
			return
		}
		oc.notify(topic, updated)

		if status == models.OrderStatusPaid {
			log.Printf("💰 Order %s paid (transaction %s)", updated.ID, result.TransactionID)
			c.JSON(http.StatusOK, gin.H{"message": "Payment successful", "order": updated})
			return
		}
		c.JSON(http.StatusPaymentRequired, gin.H{"message": "Payment declined", "order": updated})
	}
}
