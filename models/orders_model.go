package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const OrderStatusPending OrderStatus = "Pending"

// OrderItem is a purchased line. Price is the unit price at purchase time.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Price     Money              `json:"price" bson:"price"`
}

// Order represents a customer order
type Order struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	Reference   string             `json:"reference" bson:"reference"`
	Products    []OrderItem        `json:"products" bson:"products"`
	Location    string             `json:"location" bson:"location"`
	TotalAmount Money              `json:"totalAmount" bson:"totalAmount"`
	Status      OrderStatus        `json:"status" bson:"status"`
	Date        time.Time          `json:"date" bson:"date"`
}

// OrderLine is an order item shown with the product's current name, price and image.
type OrderLine struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Name      string             `json:"name" bson:"name"`
	Price     Money              `json:"price" bson:"price"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
}

type OrderView struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Reference   string             `json:"reference" bson:"reference"`
	Status      OrderStatus        `json:"status" bson:"status"`
	TotalAmount Money              `json:"totalAmount" bson:"totalAmount"`
	Date        time.Time          `json:"date" bson:"date"`
	Location    string             `json:"location" bson:"location"`
	Products    []OrderLine        `json:"products" bson:"products"`
}

// AdminOrderView is an order together with its owner.
type AdminOrderView struct {
	OrderView `bson:",inline"`
	User      UserSummary `json:"user" bson:"user"`
}
