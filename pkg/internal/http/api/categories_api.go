package api

import (
	"tipshare/pkg/internal/http/exts"
	"tipshare/pkg/internal/services"

	"github.com/gofiber/fiber/v2"
)

func (v *API) listCategory(c *fiber.Ctx) error {
	categories, err := services.ListCategory(v.db)
	if err != nil {
		return err
	}

	return c.JSON(categories)
}

func (v *API) getCategory(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("categoryId", 0)

	category, err := services.GetCategory(v.db, uint(id))
	if err != nil {
		return err
	}

	return c.JSON(category)
}

func (v *API) createCategory(c *fiber.Ctx) error {
	if _, err := v.ensureAuthenticated(c); err != nil {
		return err
	}

	var data struct {
		Name        string `json:"name" validate:"required,max=50"`
		Description string `json:"description" validate:"max=200"`
		Icon        string `json:"icon"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	category, err := services.NewCategory(v.db, data.Name, data.Description, data.Icon)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}
