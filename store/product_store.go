package store

import (
	"context"

	"fiber-mongo-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductStore struct {
	coll *mongo.Collection
}

func NewProductStore(coll *mongo.Collection) *ProductStore {
	return &ProductStore{coll: coll}
}

func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *ProductStore) Search(ctx context.Context, query string) ([]models.Product, error) {
	return s.find(ctx, SearchFilter(query))
}

func (s *ProductStore) FindAll(ctx context.Context) ([]models.Product, error) {
	return s.find(ctx, bson.M{})
}

// List returns one page of products and the total product count.
func (s *ProductStore) List(ctx context.Context, skip, limit int64) ([]models.Product, int64, error) {
	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find()
	findOptions.SetSkip(skip)
	findOptions.SetLimit(limit)

	products, err := s.find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *ProductStore) Insert(ctx context.Context, product *models.Product) (primitive.ObjectID, error) {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	if _, err := s.coll.InsertOne(ctx, product); err != nil {
		return primitive.NilObjectID, translate(err)
	}
	return product.ID, nil
}

func (s *ProductStore) Update(ctx context.Context, id primitive.ObjectID, update models.ProductUpdate) error {
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{
		"name":        update.Name,
		"description": update.Description,
		"category":    update.Category,
		"price":       update.Price,
	}})
}

func (s *ProductStore) SetImage(ctx context.Context, id primitive.ObjectID, image string) error {
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{"image": image}})
}

func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductStore) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductStore) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Product, error) {
	cursor, err := s.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
