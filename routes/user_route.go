package routes

import (
	accountsController "fiber-mongo-storefront/controllers/accounts"
	userController "fiber-mongo-storefront/controllers/user"

	"github.com/gofiber/fiber/v2"
)

func UserRoute(app *fiber.App, auth fiber.Handler, users *userController.UserController, accounts *accountsController.AccountsController) {
	app.Post("/api/signup", users.UserSignUp)
	app.Post("/api/signin", users.UserSignIn)
	app.Post("/api/signout", users.UserSignOut)
	app.Get("/api/me", auth, accounts.GetUserProfile)
}
