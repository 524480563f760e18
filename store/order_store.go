package store

import (
	"context"

	"fiber-mongo-storefront/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrderStore struct {
	coll *mongo.Collection
}

func NewOrderStore(coll *mongo.Collection) *OrderStore {
	return &OrderStore{coll: coll}
}

func (s *OrderStore) Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, order); err != nil {
		return primitive.NilObjectID, translate(err)
	}
	return order.ID, nil
}

func (s *OrderStore) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.OrderView, error) {
	orders := []models.OrderView{}
	if err := s.aggregate(ctx, UserOrdersPipeline(userID), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) FindOne(ctx context.Context, userID, orderID primitive.ObjectID) (*models.OrderView, error) {
	var orders []models.OrderView
	if err := s.aggregate(ctx, OrderPipeline(userID, orderID), &orders); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return &orders[0], nil
}

func (s *OrderStore) FindAll(ctx context.Context) ([]models.AdminOrderView, error) {
	orders := []models.AdminOrderView{}
	if err := s.aggregate(ctx, AllOrdersPipeline(), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}
