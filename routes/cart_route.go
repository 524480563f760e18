package routes

import (
	cartController "fiber-mongo-storefront/controllers/cart"

	"github.com/gofiber/fiber/v2"
)

func CartRoutes(app *fiber.App, auth fiber.Handler, cart *cartController.CartController) {
	app.Get("/api/cart", auth, cart.GetCart)
	app.Post("/api/cart/add", auth, cart.AddToCart)
	app.Post("/api/cart/remove", auth, cart.RemoveFromCart)
	app.Post("/api/cart/quantity", auth, cart.UpdateCartQuantity)
}
