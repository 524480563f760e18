package routes

import (
	"errors"

	"fiber-mongo-storefront/configs"
	accountsController "fiber-mongo-storefront/controllers/accounts"
	adminController "fiber-mongo-storefront/controllers/admin"
	cartController "fiber-mongo-storefront/controllers/cart"
	ordersController "fiber-mongo-storefront/controllers/orders"
	productsController "fiber-mongo-storefront/controllers/products"
	userController "fiber-mongo-storefront/controllers/user"
	"fiber-mongo-storefront/middlewares"
	"fiber-mongo-storefront/responses"
	"fiber-mongo-storefront/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Services are the domain services the HTTP layer exposes.
type Services struct {
	Users   *services.UserService
	Catalog *services.CatalogService
	Carts   *services.CartService
	Orders  *services.OrderService
}

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(cfg configs.Config, svc Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "fiber-mongo-storefront",
		ErrorHandler: errorHandler,
	})

	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: cfg.CORSOrigins != "*",
	}))

	app.Static("/images", cfg.PublicDir+"/images")
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	sessions := middlewares.NewSessions(cfg.JWTSecret, cfg.SessionTTL)
	auth := sessions.AuthMiddleware
	products := productsController.New(svc.Catalog, cfg.RequestTimeout)

	UserRoute(app, auth,
		userController.New(svc.Users, sessions, cfg.RequestTimeout, cfg.AppEnv != "dev"),
		accountsController.New(svc.Users, svc.Carts, cfg.RequestTimeout),
	)
	ProductsRoute(app, products)
	CartRoutes(app, auth, cartController.New(svc.Carts, cfg.RequestTimeout))
	OrderRoutes(app, auth, ordersController.New(svc.Orders, cfg.RequestTimeout))
	AdminRoutes(app, auth, adminController.New(svc.Catalog, svc.Orders, cfg.ImageDir(), cfg.RequestTimeout), products)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		message = fe.Message
	}
	return c.Status(status).JSON(responses.UserResponse{
		Status:  status,
		Message: message,
	})
}
