package routes

import (
	productsController "fiber-mongo-storefront/controllers/products"

	"github.com/gofiber/fiber/v2"
)

func ProductsRoute(app *fiber.App, products *productsController.ProductsController) {
	app.Get("/api/products", products.GetAllProducts)
	app.Get("/api/products/:id", products.FetchProductDetails)
	app.Get("/api/search", products.SearchProducts)
}
