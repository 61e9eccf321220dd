package api

import (
	"tipshare/pkg/internal/http/exts"
	"tipshare/pkg/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func (v *API) doRegister(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"username" validate:"required,min=3,max=30"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.NewAccount(v.db, data.Name, data.Email, data.Password, viper.GetInt("security.bcrypt_cost"))
	if err != nil {
		return err
	}

	token, err := v.authority.IssueToken(account.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  account,
	})
}

func (v *API) doLogin(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	identifier := lo.Ternary(len(data.Name) > 0, data.Name, data.Email)
	account, err := services.CheckCredential(v.db, identifier, data.Password)
	if err != nil {
		return err
	}

	token, err := v.authority.IssueToken(account.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  account,
	})
}
