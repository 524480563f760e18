package routes

import (
	adminController "fiber-mongo-storefront/controllers/admin"
	productsController "fiber-mongo-storefront/controllers/products"
	"fiber-mongo-storefront/middlewares"

	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App, auth fiber.Handler, admin *adminController.AdminController, products *productsController.ProductsController) {
	group := app.Group("/api/admin", auth, middlewares.RequireAdmin)

	group.Get("/products", admin.ListProducts)
	group.Post("/products", admin.AddProduct)
	group.Get("/products/export", admin.ExportProducts)
	group.Put("/products/:id", admin.UpdateProduct)
	group.Delete("/products/:id", admin.DeleteProduct)
	group.Get("/search", products.SearchProducts)
	group.Get("/orders", admin.GetAllOrders)
	group.Get("/orders/export", admin.ExportOrders)
}
