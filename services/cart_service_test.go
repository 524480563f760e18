package services

import (
	"context"
	"errors"
	"testing"

	"fiber-mongo-storefront/models"
	"fiber-mongo-storefront/store"
	"fiber-mongo-storefront/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates cart on first add", func(t *testing.T) {
		f := newFixture()
		user := primitive.NewObjectID()
		p := f.addProduct(t, "Mug", "Kitchen", "4.50")

		require.NoError(t, f.carts.AddItem(ctx, user.Hex(), p.Hex()))

		cart, ok := f.db.Cart(user)
		require.True(t, ok)
		assert.Equal(t, user, cart.UserID)
		assert.Equal(t, map[primitive.ObjectID]int{p: 1}, f.quantities(user))
	})

	t.Run("n adds give quantity n", func(t *testing.T) {
		f := newFixture()
		user := primitive.NewObjectID()
		p := f.addProduct(t, "Mug", "Kitchen", "4.50")

		for i := 0; i < 5; i++ {
			require.NoError(t, f.carts.AddItem(ctx, user.Hex(), p.Hex()))
		}

		assert.Equal(t, map[primitive.ObjectID]int{p: 5}, f.quantities(user))
	})

	t.Run("appends new product without touching others", func(t *testing.T) {
		f := newFixture()
		user := primitive.NewObjectID()
		p1 := f.addProduct(t, "Mug", "Kitchen", "4.50")
		p2 := f.addProduct(t, "Lamp", "Home", "20")

		require.NoError(t, f.carts.AddItem(ctx, user.Hex(), p1.Hex()))
		require.NoError(t, f.carts.AddItem(ctx, user.Hex(), p1.Hex()))
		require.NoError(t, f.carts.AddItem(ctx, user.Hex(), p2.Hex()))

		assert.Equal(t, map[primitive.ObjectID]int{p1: 2, p2: 1}, f.quantities(user))
		cart, _ := f.db.Cart(user)
		assert.Len(t, cart.Products, 2)
	})

	t.Run("rejects malformed ids", func(t *testing.T) {
		f := newFixture()
		err := f.carts.AddItem(ctx, "not-an-id", primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, ErrInvalidIdentifier)

		err = f.carts.AddItem(ctx, primitive.NewObjectID().Hex(), "xyz")
		assert.ErrorIs(t, err, ErrInvalidIdentifier)
	})

	t.Run("wraps store failures", func(t *testing.T) {
		f := newFixture()
		boom := errors.New("connection reset")
		f.db.Fail("cart.FindByUser", boom)

		err := f.carts.AddItem(ctx, primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, ErrStorage)
		assert.ErrorIs(t, err, boom)
	})
}

// lateCartStore misses the user's cart on its first lookup, as if another
// request created it in between.
type lateCartStore struct {
	*memstore.CartStore
	lookups int
}

func (s *lateCartStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	s.lookups++
	if s.lookups == 1 {
		return nil, store.ErrNotFound
	}
	return s.CartStore.FindByUser(ctx, userID)
}

func TestAddItemConcurrentCartCreation(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, existing ...primitive.ObjectID) (*fixture, *CartService, primitive.ObjectID) {
		f := newFixture()
		user := primitive.NewObjectID()
		cart := &models.Cart{UserID: user}
		for _, id := range existing {
			cart.Products = append(cart.Products, models.CartItem{ProductID: id, Quantity: 1})
		}
		require.NoError(t, f.db.Carts().Create(ctx, cart))
		return f, NewCartService(&lateCartStore{CartStore: f.db.Carts()}), user
	}

	t.Run("same product is incremented", func(t *testing.T) {
		p := primitive.NewObjectID()
		f, svc, user := setup(t, p)

		require.NoError(t, svc.AddItem(ctx, user.Hex(), p.Hex()))
		assert.Equal(t, map[primitive.ObjectID]int{p: 2}, f.quantities(user))
	})

	t.Run("other product is appended", func(t *testing.T) {
		existing := primitive.NewObjectID()
		p := primitive.NewObjectID()
		f, svc, user := setup(t, existing)

		require.NoError(t, svc.AddItem(ctx, user.Hex(), p.Hex()))
		assert.Equal(t, map[primitive.ObjectID]int{existing: 1, p: 1}, f.quantities(user))
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := primitive.NewObjectID()
	p1 := f.addProduct(t, "Mug", "Kitchen", "4.50")
	p2 := f.addProduct(t, "Lamp", "Home", "20")

	require.NoError(t, f.carts.AddItem(ctx, user.Hex(), p1.Hex()))
	require.NoError(t, f.carts.AddItem(ctx, user.Hex(), p2.Hex()))

	require.NoError(t, f.carts.RemoveItem(ctx, user.Hex(), p1.Hex()))
	assert.Equal(t, map[primitive.ObjectID]int{p2: 1}, f.quantities(user))

	t.Run("missing item is a no-op", func(t *testing.T) {
		require.NoError(t, f.carts.RemoveItem(ctx, user.Hex(), p1.Hex()))
		assert.Equal(t, map[primitive.ObjectID]int{p2: 1}, f.quantities(user))
	})

	t.Run("missing cart is a no-op", func(t *testing.T) {
		stranger := primitive.NewObjectID()
		require.NoError(t, f.carts.RemoveItem(ctx, stranger.Hex(), p1.Hex()))
		_, ok := f.db.Cart(stranger)
		assert.False(t, ok)
	})
}

func TestAdjustQuantity(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, adds int) (*fixture, primitive.ObjectID, primitive.ObjectID) {
		f := newFixture()
		user := primitive.NewObjectID()
		p := f.addProduct(t, "Mug", "Kitchen", "4.50")
		for i := 0; i < adds; i++ {
			require.NoError(t, f.carts.AddItem(ctx, user.Hex(), p.Hex()))
		}
		return f, user, p
	}

	t.Run("increase", func(t *testing.T) {
		f, user, p := setup(t, 2)
		require.NoError(t, f.carts.AdjustQuantity(ctx, user.Hex(), p.Hex(), Increase))
		assert.Equal(t, 3, f.quantities(user)[p])
	})

	t.Run("decrease", func(t *testing.T) {
		f, user, p := setup(t, 2)
		require.NoError(t, f.carts.AdjustQuantity(ctx, user.Hex(), p.Hex(), Decrease))
		assert.Equal(t, 1, f.quantities(user)[p])
	})

	t.Run("decrease at one removes the line", func(t *testing.T) {
		f, user, p := setup(t, 1)
		require.NoError(t, f.carts.AdjustQuantity(ctx, user.Hex(), p.Hex(), Decrease))

		_, present := f.quantities(user)[p]
		assert.False(t, present)
		cart, ok := f.db.Cart(user)
		require.True(t, ok)
		assert.Empty(t, cart.Products)
	})

	t.Run("missing cart is a no-op", func(t *testing.T) {
		f := newFixture()
		user := primitive.NewObjectID()
		require.NoError(t, f.carts.AdjustQuantity(ctx, user.Hex(), primitive.NewObjectID().Hex(), Increase))
		_, ok := f.db.Cart(user)
		assert.False(t, ok)
	})

	t.Run("missing item is a no-op", func(t *testing.T) {
		f, user, p := setup(t, 1)
		require.NoError(t, f.carts.AdjustQuantity(ctx, user.Hex(), primitive.NewObjectID().Hex(), Increase))
		assert.Equal(t, map[primitive.ObjectID]int{p: 1}, f.quantities(user))
	})

	t.Run("unknown direction", func(t *testing.T) {
		f, user, p := setup(t, 1)
		err := f.carts.AdjustQuantity(ctx, user.Hex(), p.Hex(), Direction("sideways"))
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, 1, f.quantities(user)[p])
	})
}

func TestGetCartView(t *testing.T) {
	ctx := context.Background()

	t.Run("no cart is empty", func(t *testing.T) {
		f := newFixture()
		view, err := f.carts.GetCartView(ctx, primitive.NewObjectID().Hex())
		require.NoError(t, err)
		assert.NotNil(t, view)
		assert.Empty(t, view)
	})

	t.Run("lines carry current product details", func(t *testing.T) {
		f := newFixture()
		user := primitive.NewObjectID()
		mug := f.addProduct(t, "Mug", "Kitchen", "4.50")
		lamp := f.addProduct(t, "Lamp", "Home", "20")

		require.NoError(t, f.carts.AddItem(ctx, user.Hex(), mug.Hex()))
		require.NoError(t, f.carts.AddItem(ctx, user.Hex(), mug.Hex()))
		require.NoError(t, f.carts.AddItem(ctx, user.Hex(), lamp.Hex()))

		view, err := f.carts.GetCartView(ctx, user.Hex())
		require.NoError(t, err)
		require.Len(t, view, 2)
		assert.Equal(t, "Mug", view[0].Product.Name)
		assert.Equal(t, 2, view[0].Quantity)
		assert.Equal(t, "Lamp", view[1].Product.Name)
		assert.Equal(t, "29", view.Total().String())
		assert.Equal(t, 3, view.Count())
	})

	t.Run("deleted products drop out of count and total", func(t *testing.T) {
		f := newFixture()
		user := primitive.NewObjectID()
		mug := f.addProduct(t, "Mug", "Kitchen", "4.50")
		lamp := f.addProduct(t, "Lamp", "Home", "20")

		require.NoError(t, f.carts.AddItem(ctx, user.Hex(), mug.Hex()))
		require.NoError(t, f.carts.AddItem(ctx, user.Hex(), lamp.Hex()))
		require.NoError(t, f.carts.AddItem(ctx, user.Hex(), lamp.Hex()))
		require.NoError(t, f.catalog.DeleteProduct(ctx, lamp.Hex()))

		view, err := f.carts.GetCartView(ctx, user.Hex())
		require.NoError(t, err)
		assert.Equal(t, "4.5", view.Total().String())
		assert.Equal(t, 1, view.Count())
	})

	t.Run("malformed user id", func(t *testing.T) {
		f := newFixture()
		_, err := f.carts.GetCartView(ctx, "123")
		assert.ErrorIs(t, err, ErrInvalidIdentifier)
	})
}
