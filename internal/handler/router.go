package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/herogame/herogame/internal/auth"
	"github.com/herogame/herogame/internal/store"
)

// RegisterRoutes mounts the account and hero endpoints under /api. Listing
// endpoints are open; everything that acts on behalf of an account sits
// behind the token gate.
func RegisterRoutes(app *fiber.App, repo store.RepositoryManager, auther *auth.Authenticator, logger auth.Logger) {
	guard := Protected(auther, logger)

	accounts := NewAccountController(repo, auther, logger)
	heroes := NewHeroController(repo, logger)

	api := app.Group("/api")

	acc := api.Group("/account")
	acc.Post("/sign-in", accounts.SignIn)
	acc.Post("/sign-up", accounts.SignUp)
	acc.Post("/sign-out", guard, accounts.SignOut)
	acc.Get("/", accounts.GetAll)
	acc.Get("/:id", accounts.GetByID)
	acc.Put("/:id", guard, accounts.Update)
	acc.Delete("/:id", guard, accounts.Delete)

	hro := api.Group("/heroes")
	hro.Get("/", heroes.GetAll)
	hro.Get("/mine", guard, heroes.Mine)
	hro.Get("/:id", heroes.GetByID)
	hro.Post("/", guard, heroes.Create)
	hro.Delete("/:id", guard, heroes.Delete)
}
