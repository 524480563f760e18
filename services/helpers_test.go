package services

import (
	"context"
	"testing"

	"fiber-mongo-storefront/models"
	"fiber-mongo-storefront/store/memstore"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	db      *memstore.DB
	catalog *CatalogService
	carts   *CartService
	orders  *OrderService
}

func newFixture() *fixture {
	db := memstore.New()
	catalog := NewCatalogService(db.Products())
	carts := NewCartService(db.Carts())
	return &fixture{
		db:      db,
		catalog: catalog,
		carts:   carts,
		orders:  NewOrderService(db.Orders(), catalog, carts),
	}
}

func (f *fixture) addProduct(t *testing.T, name, category, price string) primitive.ObjectID {
	t.Helper()
	id, err := f.db.Products().Insert(context.Background(), &models.Product{
		Name:     name,
		Category: category,
		Price:    models.MustParseMoney(price),
		Image:    "images/" + name + ".png",
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) quantities(userID primitive.ObjectID) map[primitive.ObjectID]int {
	cart, ok := f.db.Cart(userID)
	if !ok {
		return nil
	}
	out := map[primitive.ObjectID]int{}
	for _, item := range cart.Products {
		out[item.ProductID] = item.Quantity
	}
	return out
}
