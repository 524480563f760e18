package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"fiber-mongo-storefront/models"
	"fiber-mongo-storefront/store"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.OrderView, error)
	FindOne(ctx context.Context, userID, orderID primitive.ObjectID) (*models.OrderView, error)
	FindAll(ctx context.Context) ([]models.AdminOrderView, error)
}

type productFinder interface {
	FindByID(ctx context.Context, productID string) (*models.Product, error)
}

type cartItemRemover interface {
	RemoveItem(ctx context.Context, userID, productID string) error
}

type OrderService struct {
	orders  OrderStore
	catalog productFinder
	carts   cartItemRemover
	now     func() time.Time
}

func NewOrderService(orders OrderStore, catalog productFinder, carts cartItemRemover) *OrderService {
	return &OrderService{
		orders:  orders,
		catalog: catalog,
		carts:   carts,
		now:     time.Now,
	}
}

type PlaceOrderInput struct {
	UserID    string
	ProductID string
	Quantity  int
	Price     models.Money
	Location  string
}

// PlaceOrder records a pending order for a single product line and then takes
// that product out of the user's cart. The cart cleanup is best-effort: its
// failure is logged and the order still stands.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (primitive.ObjectID, error) {
	uid, err := parseID("userId", in.UserID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	pid, err := parseID("productId", in.ProductID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	location := strings.TrimSpace(in.Location)
	switch {
	case in.Quantity <= 0:
		return primitive.NilObjectID, validationError("quantity must be positive")
	case !in.Price.IsPositive():
		return primitive.NilObjectID, validationError("price must be positive")
	case location == "":
		return primitive.NilObjectID, validationError("location is required")
	}

	if _, err := s.catalog.FindByID(ctx, in.ProductID); err != nil {
		return primitive.NilObjectID, err
	}

	now := s.now()
	order := &models.Order{
		UserID:      uid,
		Reference:   orderReference(now),
		Products:    []models.OrderItem{{ProductID: pid, Quantity: in.Quantity, Price: in.Price}},
		Location:    location,
		TotalAmount: in.Price.Times(in.Quantity),
		Status:      models.OrderStatusPending,
		Date:        now,
	}

	id, err := s.orders.Insert(ctx, order)
	if err != nil {
		return primitive.NilObjectID, storageError("insert order", err)
	}

	if err := s.carts.RemoveItem(ctx, in.UserID, in.ProductID); err != nil {
		log.Warnf("order %s placed but cart cleanup failed for user %s: %v", id.Hex(), in.UserID, err)
	}

	return id, nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.OrderView, error) {
	uid, err := parseID("userId", userID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.FindByUser(ctx, uid)
	if err != nil {
		return nil, storageError("list user orders", err)
	}
	return orders, nil
}

// GetOrder returns one of the user's own orders.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*models.OrderView, error) {
	uid, err := parseID("userId", userID)
	if err != nil {
		return nil, err
	}
	oid, err := parseID("orderId", orderID)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.FindOne(ctx, uid, oid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, storageError("find order", err)
	}
	return order, nil
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.AdminOrderView, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, storageError("list orders", err)
	}
	return orders, nil
}

func orderReference(t time.Time) string {
	return t.UTC().Format("20060102150405") + "-" + uuid.NewString()
}
