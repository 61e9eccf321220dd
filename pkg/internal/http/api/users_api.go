package api

import (
	"tipshare/pkg/internal/http/exts"
	"tipshare/pkg/internal/services"

	"github.com/gofiber/fiber/v2"
)

func (v *API) getMyself(c *fiber.Ctx) error {
	user, err := v.ensureAuthenticated(c)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

func (v *API) editMyself(c *fiber.Ctx) error {
	user, err := v.ensureAuthenticated(c)
	if err != nil {
		return err
	}

	var data struct {
		Bio    *string `json:"bio"`
		Avatar *string `json:"avatar"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	user, err = services.UpdateProfile(v.db, user, data.Bio, data.Avatar)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

func (v *API) getOtherUser(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("userId", 0)

	user, err := services.GetAccount(v.db, uint(id))
	if err != nil {
		return err
	}

	return c.JSON(user)
}

func (v *API) followUser(c *fiber.Ctx) error {
	user, err := v.ensureAuthenticated(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("userId", 0)

	target, err := services.GetAccount(v.db, uint(id))
	if err != nil {
		return err
	}

	if err := services.FollowAccount(v.db, user, target); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "followed"})
}

func (v *API) unfollowUser(c *fiber.Ctx) error {
	user, err := v.ensureAuthenticated(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("userId", 0)

	target, err := services.GetAccount(v.db, uint(id))
	if err != nil {
		return err
	}

	if err := services.UnfollowAccount(v.db, user, target); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "unfollowed"})
}
