package routes

import (
	ordersController "fiber-mongo-storefront/controllers/orders"

	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App, auth fiber.Handler, orders *ordersController.OrderController) {
	app.Post("/api/order-now", auth, orders.PlaceOrder)
	app.Get("/api/orders", auth, orders.GetOrders)
	app.Get("/api/orders/:id", auth, orders.GetOrderById)
}
