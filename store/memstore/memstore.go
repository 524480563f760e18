// Package memstore is an in-memory stand-in for the Mongo stores, used by tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"fiber-mongo-storefront/models"
	"fiber-mongo-storefront/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DB struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]models.User
	products []models.Product
	carts    map[primitive.ObjectID]*models.Cart
	orders   []models.Order
	failures map[string]error
}

func New() *DB {
	return &DB{
		users:    map[primitive.ObjectID]models.User{},
		carts:    map[primitive.ObjectID]*models.Cart{},
		failures: map[string]error{},
	}
}

// Fail makes every later call to op (e.g. "cart.PullItem") return err.
func (db *DB) Fail(op string, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.failures[op] = err
}

func (db *DB) failure(op string) error {
	return db.failures[op]
}

func (db *DB) Products() *ProductStore { return &ProductStore{db: db} }
func (db *DB) Carts() *CartStore       { return &CartStore{db: db} }
func (db *DB) Orders() *OrderStore     { return &OrderStore{db: db} }
func (db *DB) Users() *UserStore       { return &UserStore{db: db} }

// Cart returns a copy of the user's stored cart.
func (db *DB) Cart(userID primitive.ObjectID) (models.Cart, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	cart, ok := db.carts[userID]
	if !ok {
		return models.Cart{}, false
	}
	return copyCart(cart), true
}

// StoredOrders returns every persisted order in insertion order.
func (db *DB) StoredOrders() []models.Order {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]models.Order(nil), db.orders...)
}

func (db *DB) product(id primitive.ObjectID) (models.Product, bool) {
	for _, p := range db.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func copyCart(c *models.Cart) models.Cart {
	out := *c
	out.Products = append([]models.CartItem(nil), c.Products...)
	return out
}

type ProductStore struct{ db *DB }

func (s *ProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("products.FindByID"); err != nil {
		return nil, err
	}
	p, ok := s.db.product(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *ProductStore) Search(_ context.Context, query string) ([]models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("products.Search"); err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	out := []models.Product{}
	for _, p := range s.db.products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ProductStore) FindAll(_ context.Context) ([]models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return append([]models.Product{}, s.db.products...), nil
}

func (s *ProductStore) List(_ context.Context, skip, limit int64) ([]models.Product, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	total := int64(len(s.db.products))
	if skip >= total {
		return []models.Product{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return append([]models.Product{}, s.db.products[skip:end]...), total, nil
}

func (s *ProductStore) Insert(_ context.Context, product *models.Product) (primitive.ObjectID, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("products.Insert"); err != nil {
		return primitive.NilObjectID, err
	}
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	s.db.products = append(s.db.products, *product)
	return product.ID, nil
}

func (s *ProductStore) Update(_ context.Context, id primitive.ObjectID, update models.ProductUpdate) error {
	return s.modify(id, func(p *models.Product) {
		p.Name = update.Name
		p.Description = update.Description
		p.Category = update.Category
		p.Price = update.Price
	})
}

func (s *ProductStore) SetImage(_ context.Context, id primitive.ObjectID, image string) error {
	return s.modify(id, func(p *models.Product) { p.Image = image })
}

func (s *ProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i, p := range s.db.products {
		if p.ID == id {
			s.db.products = append(s.db.products[:i], s.db.products[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *ProductStore) modify(id primitive.ObjectID, fn func(*models.Product)) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for i := range s.db.products {
		if s.db.products[i].ID == id {
			fn(&s.db.products[i])
			return nil
		}
	}
	return store.ErrNotFound
}

type CartStore struct{ db *DB }

func (s *CartStore) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("cart.FindByUser"); err != nil {
		return nil, err
	}
	cart, ok := s.db.carts[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := copyCart(cart)
	return &out, nil
}

func (s *CartStore) Create(_ context.Context, cart *models.Cart) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.carts[cart.UserID]; ok {
		return store.ErrDuplicate
	}
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	stored := copyCart(cart)
	s.db.carts[cart.UserID] = &stored
	return nil
}

func (s *CartStore) IncrementItem(_ context.Context, userID, productID primitive.ObjectID, delta int) error {
	return s.withItem(userID, productID, func(item *models.CartItem) { item.Quantity += delta })
}

func (s *CartStore) PushItem(_ context.Context, userID primitive.ObjectID, item models.CartItem) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("cart.PushItem"); err != nil {
		return err
	}
	cart, ok := s.db.carts[userID]
	if !ok {
		return nil
	}
	if _, exists := cart.Item(item.ProductID); exists {
		return nil
	}
	cart.Products = append(cart.Products, item)
	return nil
}

func (s *CartStore) PullItem(_ context.Context, userID, productID primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("cart.PullItem"); err != nil {
		return err
	}
	cart, ok := s.db.carts[userID]
	if !ok {
		return nil
	}
	kept := cart.Products[:0]
	for _, item := range cart.Products {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Products = kept
	return nil
}

func (s *CartStore) SetItemQuantity(_ context.Context, userID, productID primitive.ObjectID, quantity int) error {
	return s.withItem(userID, productID, func(item *models.CartItem) { item.Quantity = quantity })
}

func (s *CartStore) View(_ context.Context, userID primitive.ObjectID) (models.CartView, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("cart.View"); err != nil {
		return nil, err
	}
	view := models.CartView{}
	cart, ok := s.db.carts[userID]
	if !ok {
		return view, nil
	}
	for _, item := range cart.Products {
		line := models.CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
		if p, ok := s.db.product(item.ProductID); ok {
			line.Product = &p
		}
		view = append(view, line)
	}
	return view, nil
}

func (s *CartStore) withItem(userID, productID primitive.ObjectID, fn func(*models.CartItem)) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("cart.UpdateItem"); err != nil {
		return err
	}
	cart, ok := s.db.carts[userID]
	if !ok {
		return nil
	}
	for i := range cart.Products {
		if cart.Products[i].ProductID == productID {
			fn(&cart.Products[i])
		}
	}
	return nil
}

type OrderStore struct{ db *DB }

func (s *OrderStore) Insert(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("orders.Insert"); err != nil {
		return primitive.NilObjectID, err
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	stored := *order
	stored.Products = append([]models.OrderItem(nil), order.Products...)
	s.db.orders = append(s.db.orders, stored)
	return order.ID, nil
}

func (s *OrderStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.OrderView, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.OrderView{}
	for _, o := range s.db.orders {
		if o.UserID != userID {
			continue
		}
		if view, ok := s.db.view(o); ok {
			out = append(out, view)
		}
	}
	sortNewestFirst(out, func(i int) models.OrderView { return out[i] })
	return out, nil
}

func (s *OrderStore) FindOne(_ context.Context, userID, orderID primitive.ObjectID) (*models.OrderView, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, o := range s.db.orders {
		if o.ID == orderID && o.UserID == userID {
			if view, ok := s.db.view(o); ok {
				return &view, nil
			}
		}
	}
	return nil, store.ErrNotFound
}

func (s *OrderStore) FindAll(_ context.Context) ([]models.AdminOrderView, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	out := []models.AdminOrderView{}
	for _, o := range s.db.orders {
		user, ok := s.db.users[o.UserID]
		if !ok {
			continue
		}
		view, ok := s.db.view(o)
		if !ok {
			continue
		}
		out = append(out, models.AdminOrderView{
			OrderView: view,
			User:      models.UserSummary{Id: user.Id, Name: user.Name, Email: user.Email},
		})
	}
	sortNewestFirst(out, func(i int) models.OrderView { return out[i].OrderView })
	return out, nil
}

// view joins an order with current product details, dropping lines whose product is gone.
func (db *DB) view(o models.Order) (models.OrderView, bool) {
	v := models.OrderView{
		ID:          o.ID,
		Reference:   o.Reference,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		Date:        o.Date,
		Location:    o.Location,
	}
	for _, item := range o.Products {
		p, ok := db.product(item.ProductID)
		if !ok {
			continue
		}
		v.Products = append(v.Products, models.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
		})
	}
	return v, len(v.Products) > 0
}

func sortNewestFirst[T any](s []T, at func(int) models.OrderView) {
	sort.SliceStable(s, func(i, j int) bool { return at(i).Date.After(at(j).Date) })
}

type UserStore struct{ db *DB }

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *UserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, store.ErrDuplicate
		}
	}
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	s.db.users[user.Id] = *user
	return user.Id, nil
}
