package store

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/junaidrashid-git/trendy-shop/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoDatabase = "ecommerce"

// Mongo is the document Store backend. Order lines are embedded in the order
// document and resolved against the products collection on read.
type Mongo struct {
	client   *mongo.Client
	users    *mongo.Collection
	products *mongo.Collection
	orders   *mongo.Collection
}

// OpenMongo connects to uri, pings the server and ensures the indexes exist.
// The database name comes from the uri path, "ecommerce" when absent.
func OpenMongo(ctx context.Context, uri string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, wrap("connect mongo", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, wrap("ping mongo", err)
	}

	m := newMongo(client, client.Database(mongoDatabaseName(uri)))
	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return m, nil
}

func newMongo(client *mongo.Client, db *mongo.Database) *Mongo {
	return &Mongo{
		client:   client,
		users:    db.Collection("users"),
		products: db.Collection("products"),
		orders:   db.Collection("orders"),
	}
}

func mongoDatabaseName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultMongoDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return defaultMongoDatabase
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return wrap("create users index", err)
	}
	_, err = m.orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return wrap("create orders index", err)
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

func (m *Mongo) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	_, err := m.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return wrap("create user", err)
}

func (m *Mongo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := m.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("find user", err)
	}
	return &user, nil
}

func (m *Mongo) CountProducts(ctx context.Context) (int64, error) {
	n, err := m.products.CountDocuments(ctx, bson.D{})
	return n, wrap("count products", err)
}

func (m *Mongo) InsertProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, len(products))
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = newID()
		}
		if products[i].CreatedAt.IsZero() {
			products[i].CreatedAt = now
		}
		docs[i] = products[i]
	}
	_, err := m.products.InsertMany(ctx, docs)
	return wrap("insert products", err)
}

func (m *Mongo) ListProducts(ctx context.Context) ([]models.Product, error) {
	cur, err := m.products.Find(ctx, bson.D{})
	if err != nil {
		return nil, wrap("list products", err)
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, wrap("decode products", err)
	}
	return products, nil
}

func (m *Mongo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := m.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("get product", err)
	}
	return &product, nil
}

func (m *Mongo) GetProducts(ctx context.Context, ids []string) (map[string]models.Product, error) {
	out := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := m.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, wrap("get products", err)
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, wrap("decode products", err)
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (m *Mongo) CreateOrder(ctx context.Context, order *models.Order) error {
	assignIDs(order)
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	order.UpdatedAt = order.CreatedAt
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	_, err := m.orders.InsertOne(ctx, order)
	return wrap("create order", err)
}

func (m *Mongo) ListOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := m.orders.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, wrap("list orders", err)
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, wrap("decode orders", err)
	}
	if err := m.resolveProducts(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (m *Mongo) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	var order models.Order
	err := m.orders.FindOne(ctx, bson.M{"_id": orderID, "userId": userID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrap("get order", err)
	}
	orders := []models.Order{order}
	if err := m.resolveProducts(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (m *Mongo) UpdateOrderPayment(ctx context.Context, orderID string, status models.OrderStatus, transactionID string) error {
	filter := bson.M{"_id": orderID, "status": bson.M{"$in": payableStatuses()}}
	res, err := m.orders.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"status":        status,
		"transactionId": transactionID,
		"updatedAt":     time.Now(),
	}})
	if err != nil {
		return wrap("update order payment", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := m.orders.CountDocuments(ctx, bson.M{"_id": orderID}, options.Count().SetLimit(1))
	if err != nil {
		return wrap("update order payment", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrNotPayable
}

// resolveProducts fills Items[].Product in place, the document equivalent of
// Preload("Items.Product").
func (m *Mongo) resolveProducts(ctx context.Context, orders []models.Order) error {
	seen := map[string]bool{}
	var ids []string
	for _, o := range orders {
		for _, item := range o.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}
	products, err := m.GetProducts(ctx, ids)
	if err != nil {
		return err
	}
	for i := range orders {
		for j := range orders[i].Items {
			if p, ok := products[orders[i].Items[j].ProductID]; ok {
				p := p
				orders[i].Items[j].Product = &p
			}
		}
	}
	return nil
}
