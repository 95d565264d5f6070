package store

import (
	"context"
	"errors"
	"time"

	"github.com/junaidrashid-git/trendy-shop/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Gorm is the relational Store backend.
type Gorm struct {
	db *gorm.DB
}

func postgresDialector(dsn string) gorm.Dialector { return postgres.Open(dsn) }
func mysqlDialector(dsn string) gorm.Dialector    { return mysql.Open(dsn) }
func sqliteDialector(dsn string) gorm.Dialector   { return sqlite.Open(dsn) }

// OpenGorm opens the database and migrates the catalog tables.
func OpenGorm(dialector gorm.Dialector) (*Gorm, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, wrap("open database", err)
	}
	return NewGorm(db)
}

// NewGorm wraps an already opened connection, running AutoMigrate on it.
func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return nil, wrap("auto-migrate", err)
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (g *Gorm) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	err := g.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return wrap("create user", err)
}

func (g *Gorm) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := g.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("find user", err)
	}
	return &user, nil
}

func (g *Gorm) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, wrap("count products", err)
}

func (g *Gorm) InsertProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	now := time.Now()
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = newID()
		}
		if products[i].CreatedAt.IsZero() {
			products[i].CreatedAt = now
		}
	}
	return wrap("insert products", g.db.WithContext(ctx).Create(&products).Error)
}

func (g *Gorm) ListProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := g.db.WithContext(ctx).Find(&products).Error
	if err != nil {
		return nil, wrap("list products", err)
	}
	return products, nil
}

func (g *Gorm) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := g.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("get product", err)
	}
	return &product, nil
}

func (g *Gorm) GetProducts(ctx context.Context, ids []string) (map[string]models.Product, error) {
	out := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var products []models.Product
	if err := g.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, wrap("get products", err)
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (g *Gorm) CreateOrder(ctx context.Context, order *models.Order) error {
	assignIDs(order)
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = order.CreatedAt
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	// Items and order go in together or not at all.
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	return wrap("create order", err)
}

func (g *Gorm) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, wrap("list orders", err)
	}
	return orders, nil
}

func (g *Gorm) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	var order models.Order
	err := g.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("get order", err)
	}
	return &order, nil
}

func (g *Gorm) UpdateOrderPayment(ctx context.Context, orderID string, status models.OrderStatus, transactionID string) error {
	db := g.db.WithContext(ctx)
	res := db.Model(&models.Order{}).
		Where("id = ? AND status IN ?", orderID, payableStatuses()).
		Updates(map[string]interface{}{
			"status":         status,
			"transaction_id": transactionID,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return wrap("update order payment", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := db.Model(&models.Order{}).Where("id = ?", orderID).Count(&n).Error; err != nil {
		return wrap("update order payment", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrNotPayable
}
