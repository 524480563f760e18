package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Cart is the single cart document a user owns.
type Cart struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	Products []CartItem         `bson:"products" json:"products"`
}

type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Item returns the line for productID, if any.
func (c *Cart) Item(productID primitive.ObjectID) (CartItem, bool) {
	if c == nil {
		return CartItem{}, false
	}
	for _, item := range c.Products {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// CartLine is a cart item joined with the product's current details.
// Product is nil when the product has since been deleted.
type CartLine struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Product   *Product           `bson:"product,omitempty" json:"product,omitempty"`
}

type CartView []CartLine

// Total prices each line at the product's current price.
func (v CartView) Total() Money {
	total := Money{}
	for _, line := range v {
		if line.Product == nil {
			continue
		}
		total = total.Plus(line.Product.Price.Times(line.Quantity))
	}
	return total
}

// Count sums the quantities of lines whose product still exists.
func (v CartView) Count() int {
	n := 0
	for _, line := range v {
		if line.Product == nil {
			continue
		}
		n += line.Quantity
	}
	return n
}
