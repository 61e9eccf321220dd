package api

import (
	"tipshare/pkg/internal/http/exts"
	"tipshare/pkg/internal/models"
	"tipshare/pkg/internal/services"

	"github.com/gofiber/fiber/v2"
)

func (v *API) listPostComments(c *fiber.Ctx) error {
	postId, _ := c.ParamsInt("postId", 0)

	items, err := services.ListPostComments(v.db, uint(postId))
	if err != nil {
		return err
	}

	return c.JSON(items)
}

func (v *API) createComment(c *fiber.Ctx) error {
	user, err := v.ensureAuthenticated(c)
	if err != nil {
		return err
	}

	var data struct {
		Content       string `json:"content" validate:"required"`
		Post          uint   `json:"post" validate:"required"`
		ParentComment *uint  `json:"parent_comment"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewComment(v.db, user, models.Comment{
		Content:  data.Content,
		PostID:   data.Post,
		ParentID: data.ParentComment,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func (v *API) deleteComment(c *fiber.Ctx) error {
	user, err := v.ensureAuthenticated(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("commentId", 0)

	item, err := services.GetComment(v.db, uint(id))
	if err != nil {
		return err
	}
	if item.AuthorID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "you cannot delete comments of others")
	}

	if err := services.DeleteComment(v.db, item); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "comment deleted"})
}

func (v *API) likeComment(c *fiber.Ctx) error {
	user, err := v.ensureAuthenticated(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("commentId", 0)

	item, err := services.GetComment(v.db, uint(id))
	if err != nil {
		return err
	}

	liked, count, err := services.ToggleLikeComment(v.db, user, item)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"liked":       liked,
		"likes_count": count,
	})
}
