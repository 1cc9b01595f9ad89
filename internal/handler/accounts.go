package handler

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/herogame/herogame/internal/auth"
	"github.com/herogame/herogame/internal/model"
	"github.com/herogame/herogame/internal/store"
)

// AccountController serves the account endpoints: sign-in, sign-up, the
// sign-out placeholder, and account CRUD.
type AccountController struct {
	repo   store.RepositoryManager
	auther *auth.Authenticator
	logger auth.Logger
}

// NewAccountController creates the account controller.
func NewAccountController(repo store.RepositoryManager, auther *auth.Authenticator, logger auth.Logger) *AccountController {
	return &AccountController{
		repo:   repo,
		auther: auther,
		logger: logger,
	}
}

// SignInRequest is the login payload.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate will run validation rules.
func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// SignIn authenticates a username/password pair and returns basic account
// info plus a session token. Unknown users and wrong passwords produce the
// same response so the endpoint cannot be used to enumerate usernames.
func (c *AccountController) SignIn(ctx *fiber.Ctx) error {
	payload := new(SignInRequest)

	if err := ctx.BodyParser(payload); err != nil {
		c.logger.Error("sign-in parse payload: %v", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "failed to parse body"})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	account, token, err := c.auther.Login(ctx.UserContext(), payload.Username, payload.Password)
	if err != nil {
		if auth.IsAuthFailure(err) {
			c.logger.Info("sign-in rejected: %s", auth.TextCode(err))
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "incorrect username or password",
			})
		}
		return renderError(ctx, err)
	}

	return ctx.JSON(fiber.Map{
		"id":       account.ID,
		"username": account.Username,
		"token":    token,
	})
}

// SignUpRequest is the registration payload.
type SignUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate will run validation rules.
func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Password, validation.Required),
	)
}

// SignUp registers a new account.
func (c *AccountController) SignUp(ctx *fiber.Ctx) error {
	payload := new(SignUpRequest)

	if err := ctx.BodyParser(payload); err != nil {
		c.logger.Error("sign-up parse payload: %v", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "failed to parse body"})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	account := &model.Account{Username: payload.Username}

	created, err := c.auther.Register(ctx.UserContext(), account, payload.Password)
	if err != nil {
		return renderError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       created.ID,
		"username": created.Username,
	})
}

// SignOut is a placeholder. Session tokens are stateless, so there is no
// server-side session to end; issued tokens remain valid until their
// natural expiry.
func (c *AccountController) SignOut(ctx *fiber.Ctx) error {
	return ctx.SendStatus(fiber.StatusOK)
}

// GetAll lists every account. Hash and salt never serialize.
func (c *AccountController) GetAll(ctx *fiber.Ctx) error {
	records, err := c.repo.Accounts().List(ctx.UserContext())
	if err != nil {
		return renderError(ctx, err)
	}
	return ctx.JSON(records)
}

// GetByID returns one account.
func (c *AccountController) GetByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid account id"})
	}

	record, err := c.repo.Accounts().FindByID(ctx.UserContext(), int64(id))
	if err != nil {
		return renderError(ctx, err)
	}

	return ctx.JSON(record)
}

// UpdateAccountRequest is the account update payload. Password is optional;
// an empty value means "no change".
type UpdateAccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Update renames an account and/or replaces its password.
func (c *AccountController) Update(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid account id"})
	}

	payload := new(UpdateAccountRequest)
	if err := ctx.BodyParser(payload); err != nil {
		c.logger.Error("account update parse payload: %v", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "failed to parse body"})
	}

	change := auth.KeepPassword()
	if payload.Password != "" {
		change = auth.SetPassword(payload.Password)
	}

	record, err := c.auther.Update(ctx.UserContext(), int64(id), payload.Username, change)
	if err != nil {
		return renderError(ctx, err)
	}

	return ctx.JSON(record)
}

// Delete removes an account and its credential record. Any session tokens
// already issued for it will fail the existence gate from now on.
func (c *AccountController) Delete(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid account id"})
	}

	if err := c.auther.Delete(ctx.UserContext(), int64(id)); err != nil {
		return renderError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusOK)
}
