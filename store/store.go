// Package store persists users, products and orders for the catalog service.
//
// Two backends implement Store: a gorm backend (postgres, mysql or sqlite) and a
// MongoDB backend. Open picks one from the connection URL.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/trendy-shop/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotPayable means the order exists but has left the payable statuses.
	ErrNotPayable = errors.New("order is not payable")
)

type Store interface {
	Ping(ctx context.Context) error
	Close() error

	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	CountProducts(ctx context.Context) (int64, error)
	InsertProducts(ctx context.Context, products []models.Product) error
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	// GetProducts returns the products found among ids, keyed by id. Missing ids are
	// simply absent from the map.
	GetProducts(ctx context.Context, ids []string) (map[string]models.Product, error)

	CreateOrder(ctx context.Context, order *models.Order) error
	// ListOrdersByUser returns the user's orders newest first with products resolved.
	ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error)
	// UpdateOrderPayment records a payment outcome. It only applies while the
	// order is in a payable status and returns ErrNotPayable otherwise.
	UpdateOrderPayment(ctx context.Context, orderID string, status models.OrderStatus, transactionID string) error
}

// Open connects to the database named by url. mongodb:// and mongodb+srv:// URLs
// select the document backend; mysql:// and sqlite:// select the matching gorm
// driver; anything else is handed to the postgres driver.
func Open(ctx context.Context, url string) (Store, error) {
	switch {
	case url == "":
		return nil, errors.New("database url is empty")
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		m, err := OpenMongo(ctx, url)
		if err != nil {
			return nil, err
		}
		return m, nil
	}

	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(url, "mysql://"):
		dialector = mysqlDialector(strings.TrimPrefix(url, "mysql://"))
	case strings.HasPrefix(url, "sqlite://"):
		dialector = sqliteDialector(strings.TrimPrefix(url, "sqlite://"))
	default:
		dialector = postgresDialector(url)
	}
	g, err := OpenGorm(dialector)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func newID() string {
	return uuid.NewString()
}

func assignIDs(order *models.Order) {
	if order.ID == "" {
		order.ID = newID()
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
}

func payableStatuses() []string {
	out := make([]string, len(models.PayableStatuses))
	for i, s := range models.PayableStatuses {
		out[i] = string(s)
	}
	return out
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
