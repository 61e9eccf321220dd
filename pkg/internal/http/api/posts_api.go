package api

import (
	"tipshare/pkg/internal/http/exts"
	"tipshare/pkg/internal/models"
	"tipshare/pkg/internal/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func (v *API) universalPostFilter(c *fiber.Ctx, tx *gorm.DB) *gorm.DB {
	if category := c.QueryInt("category", 0); category > 0 {
		tx = services.FilterPostWithCategory(tx, uint(category))
	}
	if tag := c.Query("tag"); len(tag) > 0 {
		tx = services.FilterPostWithTag(tx, tag)
	}
	if probe := c.Query("search"); len(probe) > 0 {
		tx = services.FilterPostWithFuzzySearch(tx, probe)
	}

	return tx
}

func (v *API) listPost(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)

	tx := v.universalPostFilter(c, v.db)

	count, err := services.CountPost(tx)
	if err != nil {
		return err
	}

	items, err := services.ListPost(tx, page, limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"posts":       items,
		"currentPage": page,
		"totalPages":  services.TotalPages(count, limit),
		"totalPosts":  count,
	})
}

func (v *API) getPost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)

	item, err := services.GetPost(v.db, uint(id))
	if err != nil {
		return err
	}

	// Every read counts, and the increment lands before the response.
	if err := services.IncreasePostViews(v.db, &item); err != nil {
		return err
	}

	return c.JSON(item)
}

func (v *API) createPost(c *fiber.Ctx) error {
	user, err := v.ensureAuthenticated(c)
	if err != nil {
		return err
	}

	var data struct {
		Title    string   `json:"title" validate:"required,max=200"`
		Content  string   `json:"content" validate:"required,max=10000"`
		Category uint     `json:"category" validate:"required"`
		Tags     []string `json:"tags"`
		Images   []string `json:"images"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewPost(v.db, user, models.Post{
		Title:      data.Title,
		Content:    data.Content,
		CategoryID: data.Category,
		Tags:       datatypes.NewJSONSlice(data.Tags),
		Images:     datatypes.NewJSONSlice(data.Images),
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func (v *API) editPost(c *fiber.Ctx) error {
	user, err := v.ensureAuthenticated(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("postId", 0)

	var data struct {
		Title    *string  `json:"title"`
		Content  *string  `json:"content"`
		Category *uint    `json:"category"`
		Tags     []string `json:"tags"`
		Images   []string `json:"images"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.GetPost(v.db, uint(id))
	if err != nil {
		return err
	}
	if item.AuthorID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "you cannot edit posts of others")
	}

	item, err = services.EditPost(v.db, item, services.PostUpdate{
		Title:      data.Title,
		Content:    data.Content,
		CategoryID: data.Category,
		Tags:       data.Tags,
		Images:     data.Images,
	})
	if err != nil {
		return err
	}

	return c.JSON(item)
}

func (v *API) deletePost(c *fiber.Ctx) error {
	user, err := v.ensureAuthenticated(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("postId", 0)

	item, err := services.GetPost(v.db, uint(id))
	if err != nil {
		return err
	}
	if item.AuthorID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "you cannot delete posts of others")
	}

	if err := services.DeletePost(v.db, item); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "post deleted"})
}

func (v *API) likePost(c *fiber.Ctx) error {
	user, err := v.ensureAuthenticated(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("postId", 0)

	item, err := services.GetPost(v.db, uint(id))
	if err != nil {
		return err
	}

	liked, count, err := services.ToggleLikePost(v.db, user, item)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"liked":       liked,
		"likes_count": count,
	})
}

func (v *API) forkPost(c *fiber.Ctx) error {
	user, err := v.ensureAuthenticated(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("postId", 0)

	origin, err := services.GetPost(v.db, uint(id))
	if err != nil {
		return err
	}

	fork, err := services.ForkPost(v.db, user, origin)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fork)
}

func (v *API) savePost(c *fiber.Ctx) error {
	user, err := v.ensureAuthenticated(c)
	if err != nil {
		return err
	}
	id, _ := c.ParamsInt("postId", 0)

	item, err := services.GetPost(v.db, uint(id))
	if err != nil {
		return err
	}

	saved, err := services.ToggleSavePost(v.db, user, item.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"saved": saved})
}
