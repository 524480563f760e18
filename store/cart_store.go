package store

import (
	"context"

	"fiber-mongo-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CartStore struct {
	coll *mongo.Collection
}

func NewCartStore(coll *mongo.Collection) *CartStore {
	return &CartStore{coll: coll}
}

func (s *CartStore) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	if err := s.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart); err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (s *CartStore) Create(ctx context.Context, cart *models.Cart) error {
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, cart)
	return translate(err)
}

// IncrementItem adds delta to an existing line's quantity.
func (s *CartStore) IncrementItem(ctx context.Context, userID, productID primitive.ObjectID, delta int) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"userId": userID, "products.productId": productID},
		bson.M{"$inc": bson.M{"products.$.quantity": delta}},
	)
	return translate(err)
}

// PushItem appends a line unless one for the same product is already present.
func (s *CartStore) PushItem(ctx context.Context, userID primitive.ObjectID, item models.CartItem) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"userId": userID, "products.productId": bson.M{"$ne": item.ProductID}},
		bson.M{"$push": bson.M{"products": item}},
	)
	return translate(err)
}

func (s *CartStore) PullItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$pull": bson.M{"products": bson.M{"productId": productID}}},
	)
	return translate(err)
}

func (s *CartStore) SetItemQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"userId": userID, "products.productId": productID},
		bson.M{"$set": bson.M{"products.$.quantity": quantity}},
	)
	return translate(err)
}

func (s *CartStore) View(ctx context.Context, userID primitive.ObjectID) (models.CartView, error) {
	cursor, err := s.coll.Aggregate(ctx, CartViewPipeline(userID))
	if err != nil {
		return nil, err
	}
	view := models.CartView{}
	if err := cursor.All(ctx, &view); err != nil {
		return nil, err
	}
	return view, nil
}
