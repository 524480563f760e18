package store

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SearchFilter matches query as a case-insensitive literal substring of name or category.
func SearchFilter(query string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{
		"$or": bson.A{
			bson.M{"name": bson.M{"$regex": pattern}},
			bson.M{"category": bson.M{"$regex": pattern}},
		},
	}
}

// CartViewPipeline expands a user's cart into one document per line with the product joined in.
func CartViewPipeline(userID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$unwind", Value: "$products"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "products.productId",
			"foreignField": "_id",
			"as":           "productDetails",
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":       0,
			"productId": "$products.productId",
			"quantity":  "$products.quantity",
			"product":   bson.M{"$arrayElemAt": bson.A{"$productDetails", 0}},
		}}},
	}
}

// orderLineStages unwinds order items and joins each with its product under productDetail.
func orderLineStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$products"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "products.productId",
			"foreignField": "_id",
			"as":           "productDetail",
		}}},
		{{Key: "$unwind", Value: "$productDetail"}},
	}
}

func orderGroupFields() bson.D {
	return bson.D{
		{Key: "_id", Value: "$_id"},
		{Key: "reference", Value: bson.M{"$first": "$reference"}},
		{Key: "status", Value: bson.M{"$first": "$status"}},
		{Key: "totalAmount", Value: bson.M{"$first": "$totalAmount"}},
		{Key: "date", Value: bson.M{"$first": "$date"}},
		{Key: "location", Value: bson.M{"$first": "$location"}},
		{Key: "products", Value: bson.M{"$push": bson.M{
			"productId": "$products.productId",
			"quantity":  "$products.quantity",
			"name":      "$productDetail.name",
			"price":     "$productDetail.price",
			"image":     "$productDetail.image",
		}}},
	}
}

var newestFirst = bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}}

// UserOrdersPipeline lists a user's orders newest first with current product details.
func UserOrdersPipeline(userID primitive.ObjectID) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
	}
	pipeline = append(pipeline, orderLineStages()...)
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: orderGroupFields()}},
		newestFirst,
	)
	return pipeline
}

// OrderPipeline is UserOrdersPipeline narrowed to a single order.
func OrderPipeline(userID, orderID primitive.ObjectID) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": orderID, "userId": userID}}},
	}
	pipeline = append(pipeline, orderLineStages()...)
	return append(pipeline, bson.D{{Key: "$group", Value: orderGroupFields()}})
}

// AllOrdersPipeline lists every order with its owner, newest first.
func AllOrdersPipeline() mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: "$user"}},
	}
	pipeline = append(pipeline, orderLineStages()...)

	group := orderGroupFields()
	group = append(group, bson.E{Key: "user", Value: bson.M{"$first": bson.M{
		"_id":   "$user._id",
		"name":  "$user.name",
		"email": "$user.email",
	}}})

	return append(pipeline,
		bson.D{{Key: "$group", Value: group}},
		newestFirst,
	)
}
