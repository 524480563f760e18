package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Price       Money              `bson:"price" json:"price"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
}

// ProductUpdate holds the editable product fields.
type ProductUpdate struct {
	Name        string
	Description string
	Category    string
	Price       Money
}

// ProductImagePath is the public path of an uploaded product image.
func ProductImagePath(id primitive.ObjectID) string {
	return "images/product-images/" + id.Hex() + ".png"
}
