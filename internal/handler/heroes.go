package handler

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/herogame/herogame/internal/auth"
	"github.com/herogame/herogame/internal/model"
	"github.com/herogame/herogame/internal/store"
)

// HeroController serves the hero endpoints.
type HeroController struct {
	repo   store.RepositoryManager
	logger auth.Logger
}

// NewHeroController creates the hero controller.
func NewHeroController(repo store.RepositoryManager, logger auth.Logger) *HeroController {
	return &HeroController{
		repo:   repo,
		logger: logger,
	}
}

// CreateHeroRequest is the hero creation payload. Name is optional; a fresh
// hero without one gets the default starter name.
type CreateHeroRequest struct {
	Name string `json:"name"`
}

// Validate will run validation rules.
func (r CreateHeroRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 100)),
	)
}

// Create spawns a starter hero for the authenticated account. The owner is
// taken from the validated token, never from the payload.
func (c *HeroController) Create(ctx *fiber.Ctx) error {
	accountID, ok := AccountID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	payload := new(CreateHeroRequest)
	if err := ctx.BodyParser(payload); err != nil {
		c.logger.Error("hero create parse payload: %v", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "failed to parse body"})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	hero := model.NewHero(accountID, payload.Name)

	created, err := c.repo.Heroes().Create(ctx.UserContext(), hero)
	if err != nil {
		return renderError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(created)
}

// GetAll lists every hero.
func (c *HeroController) GetAll(ctx *fiber.Ctx) error {
	records, err := c.repo.Heroes().List(ctx.UserContext())
	if err != nil {
		return renderError(ctx, err)
	}
	return ctx.JSON(records)
}

// GetByID returns one hero.
func (c *HeroController) GetByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid hero id"})
	}

	record, err := c.repo.Heroes().FindByID(ctx.UserContext(), int64(id))
	if err != nil {
		return renderError(ctx, err)
	}

	return ctx.JSON(record)
}

// Mine lists the authenticated account's heroes.
func (c *HeroController) Mine(ctx *fiber.Ctx) error {
	accountID, ok := AccountID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	records, err := c.repo.Heroes().ListByAccount(ctx.UserContext(), accountID)
	if err != nil {
		return renderError(ctx, err)
	}

	return ctx.JSON(records)
}

// Delete removes a hero owned by the authenticated account.
func (c *HeroController) Delete(ctx *fiber.Ctx) error {
	accountID, ok := AccountID(ctx)
	if !ok {
		return unauthorized(ctx)
	}

	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid hero id"})
	}

	record, err := c.repo.Heroes().FindByID(ctx.UserContext(), int64(id))
	if err != nil {
		return renderError(ctx, err)
	}

	if record.AccountID != accountID {
		return unauthorized(ctx)
	}

	if err := c.repo.Heroes().Delete(ctx.UserContext(), record.ID); err != nil {
		return renderError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusOK)
}
