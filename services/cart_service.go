package services

import (
	"context"
	"errors"

	"fiber-mongo-storefront/models"
	"fiber-mongo-storefront/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	IncrementItem(ctx context.Context, userID, productID primitive.ObjectID, delta int) error
	PushItem(ctx context.Context, userID primitive.ObjectID, item models.CartItem) error
	PullItem(ctx context.Context, userID, productID primitive.ObjectID) error
	SetItemQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error
	View(ctx context.Context, userID primitive.ObjectID) (models.CartView, error)
}

type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
)

// CartService owns every change to a user's cart.
//
// Each mutation reads the cart and then writes it. Two concurrent requests on
// the same cart may lose one update; the store's unique userId index and the
// guarded push keep a user at one cart with one line per product.
type CartService struct {
	carts CartStore
}

func NewCartService(carts CartStore) *CartService {
	return &CartService{carts: carts}
}

// AddItem puts one unit of the product in the user's cart, creating the cart on first use.
func (s *CartService) AddItem(ctx context.Context, userID, productID string) error {
	uid, pid, err := parseCartIDs(userID, productID)
	if err != nil {
		return err
	}

	cart, err := s.findCart(ctx, uid)
	if err != nil {
		return err
	}

	if cart == nil {
		err = s.carts.Create(ctx, &models.Cart{
			UserID:   uid,
			Products: []models.CartItem{{ProductID: pid, Quantity: 1}},
		})
		if errors.Is(err, store.ErrDuplicate) {
			// Another request created the cart first; add to that one.
			return s.addToExisting(ctx, uid, pid)
		}
		if err != nil {
			return storageError("create cart", err)
		}
		return nil
	}

	return s.addLine(ctx, cart, uid, pid)
}

func (s *CartService) addToExisting(ctx context.Context, userID, productID primitive.ObjectID) error {
	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return storageError("add cart item", store.ErrNotFound)
	}
	return s.addLine(ctx, cart, userID, productID)
}

// addLine increments an existing line or appends a new one.
func (s *CartService) addLine(ctx context.Context, cart *models.Cart, userID, productID primitive.ObjectID) error {
	var err error
	if _, inCart := cart.Item(productID); inCart {
		err = s.carts.IncrementItem(ctx, userID, productID, 1)
	} else {
		err = s.carts.PushItem(ctx, userID, models.CartItem{ProductID: productID, Quantity: 1})
	}
	if err != nil {
		return storageError("add cart item", err)
	}
	return nil
}

// RemoveItem drops the product's line. A missing cart or line is not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	uid, pid, err := parseCartIDs(userID, productID)
	if err != nil {
		return err
	}
	if err := s.carts.PullItem(ctx, uid, pid); err != nil {
		return storageError("remove cart item", err)
	}
	return nil
}

// AdjustQuantity moves a line's quantity by one. Dropping below one removes the line.
func (s *CartService) AdjustQuantity(ctx context.Context, userID, productID string, direction Direction) error {
	var delta int
	switch direction {
	case Increase:
		delta = 1
	case Decrease:
		delta = -1
	default:
		return validationError("direction must be increase or decrease")
	}

	uid, pid, err := parseCartIDs(userID, productID)
	if err != nil {
		return err
	}

	cart, err := s.findCart(ctx, uid)
	if err != nil {
		return err
	}
	item, ok := cart.Item(pid)
	if !ok {
		return nil
	}

	quantity := item.Quantity + delta
	if quantity < 1 {
		err = s.carts.PullItem(ctx, uid, pid)
	} else {
		err = s.carts.SetItemQuantity(ctx, uid, pid, quantity)
	}
	if err != nil {
		return storageError("adjust cart quantity", err)
	}
	return nil
}

// GetCartView lists the cart's lines with current product details. No cart yields an empty view.
func (s *CartService) GetCartView(ctx context.Context, userID string) (models.CartView, error) {
	uid, err := parseID("userId", userID)
	if err != nil {
		return nil, err
	}
	view, err := s.carts.View(ctx, uid)
	if err != nil {
		return nil, storageError("load cart", err)
	}
	if view == nil {
		view = models.CartView{}
	}
	return view, nil
}

func (s *CartService) findCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("find cart", err)
	}
	return cart, nil
}

func parseCartIDs(userID, productID string) (primitive.ObjectID, primitive.ObjectID, error) {
	uid, err := parseID("userId", userID)
	if err != nil {
		return uid, primitive.NilObjectID, err
	}
	pid, err := parseID("productId", productID)
	return uid, pid, err
}
