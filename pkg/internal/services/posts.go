package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tipshare/pkg/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const ForkTitlePrefix = "[Fork] "

func FilterPostWithCategory(tx *gorm.DB, categoryId uint) *gorm.DB {
	return tx.Where("category_id = ?", categoryId)
}

func FilterPostWithTag(tx *gorm.DB, tag string) *gorm.DB {
	// The jsonb ?-operator treats string array elements as keys, so HasKey
	// is an exact-element match on postgres; sqlite walks the array instead.
	if tx.Dialector.Name() == "postgres" {
		return tx.Where(datatypes.JSONQuery("tags").HasKey(tag))
	}
	return tx.Where(datatypes.JSONArrayQuery("tags").Contains(tag))
}

func FilterPostWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	if len(probe) == 0 {
		return tx
	}

	probe = "%" + strings.ToLower(probe) + "%"
	return tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", probe, probe)
}

func PreloadGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("Category").
		Preload("ForkedFrom").
		Preload("ForkedFrom.Author")
}

func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadGeneral(tx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, fmt.Errorf("%w: post #%d", ErrNotFound, id)
		}
		return item, err
	}

	return item, nil
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

// ListPost returns one page of posts, newest first. Page starts at 1 and
// limit defaults to 10; anything above 100 is clamped.
func ListPost(tx *gorm.DB, page, limit int) ([]models.Post, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	var items []models.Post
	if err := PreloadGeneral(tx).
		Limit(limit).Offset((page - 1) * limit).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

// TotalPages gives the ceiling of total over limit for list responses.
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		limit = 10
	}
	return (total + int64(limit) - 1) / int64(limit)
}

// IncreasePostViews persists a single view for the post. Every read counts,
// including the author's own and repeated ones.
func IncreasePostViews(tx *gorm.DB, item *models.Post) error {
	if err := tx.Model(&models.Post{}).
		Where("id = ?", item.ID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return err
	}

	item.Views++
	return nil
}

func NewPost(tx *gorm.DB, user models.Account, item models.Post) (models.Post, error) {
	if _, err := GetCategory(tx, item.CategoryID); err != nil {
		return item, err
	}

	item.AuthorID = user.ID
	if item.Tags == nil {
		item.Tags = datatypes.NewJSONSlice([]string{})
	}
	if item.Images == nil {
		item.Images = datatypes.NewJSONSlice([]string{})
	}
	item.Likes = datatypes.NewJSONSlice([]uint{})
	item.Forks = datatypes.NewJSONSlice([]uint{})
	item.EditHistory = datatypes.NewJSONSlice([]models.PostEdit{})

	if err := tx.Create(&item).Error; err != nil {
		return item, err
	}

	return GetPost(tx, item.ID)
}

// PostUpdate is a partial-overwrite payload: a nil (or empty, for the
// scalar fields) member keeps the prior value.
type PostUpdate struct {
	Title      *string
	Content    *string
	CategoryID *uint
	Tags       []string
	Images     []string
}

// EditPost appends the pre-update content to the post's edit history and
// then applies whichever fields the update carries.
func EditPost(tx *gorm.DB, item models.Post, update PostUpdate) (models.Post, error) {
	item.EditHistory = append(item.EditHistory, models.PostEdit{
		Content:  item.Content,
		EditedAt: time.Now(),
	})

	if update.Title != nil && len(*update.Title) > 0 {
		item.Title = *update.Title
	}
	if update.Content != nil && len(*update.Content) > 0 {
		item.Content = *update.Content
	}
	if update.CategoryID != nil && *update.CategoryID > 0 {
		if _, err := GetCategory(tx, *update.CategoryID); err != nil {
			return item, err
		}
		item.CategoryID = *update.CategoryID
	}
	if update.Tags != nil {
		item.Tags = datatypes.NewJSONSlice(update.Tags)
	}
	if update.Images != nil {
		item.Images = datatypes.NewJSONSlice(update.Images)
	}

	if err := tx.Omit(clause.Associations).Save(&item).Error; err != nil {
		return item, err
	}

	return GetPost(tx, item.ID)
}

func DeletePost(tx *gorm.DB, item models.Post) error {
	return tx.Delete(&item).Error
}

// ToggleLikePost flips the caller's membership in the post's like set and
// returns the new membership with the new set size.
func ToggleLikePost(tx *gorm.DB, user models.Account, item models.Post) (bool, int, error) {
	liked := !lo.Contains(item.Likes, user.ID)
	if liked {
		item.Likes = append(item.Likes, user.ID)
	} else {
		item.Likes = datatypes.NewJSONSlice(lo.Filter(item.Likes, func(id uint, _ int) bool {
			return id != user.ID
		}))
	}

	if err := tx.Model(&item).Update("likes", item.Likes).Error; err != nil {
		return liked, len(item.Likes), err
	}
	return liked, len(item.Likes), nil
}

// ForkPost duplicates a post under the caller's name, keeping provenance on
// both sides. The origin update is a second independent write: when it
// fails the fork stays without a back-link from its parent, and the error
// is surfaced instead of retried.
func ForkPost(tx *gorm.DB, user models.Account, origin models.Post) (models.Post, error) {
	fork := models.Post{
		Title:        ForkTitlePrefix + origin.Title,
		Content:      origin.Content,
		CategoryID:   origin.CategoryID,
		Tags:         origin.Tags,
		Images:       datatypes.NewJSONSlice([]string{}),
		Likes:        datatypes.NewJSONSlice([]uint{}),
		Forks:        datatypes.NewJSONSlice([]uint{}),
		EditHistory:  datatypes.NewJSONSlice([]models.PostEdit{}),
		AuthorID:     user.ID,
		ForkedFromID: &origin.ID,
	}
	if fork.Tags == nil {
		fork.Tags = datatypes.NewJSONSlice([]string{})
	}

	if err := tx.Create(&fork).Error; err != nil {
		return fork, err
	}

	origin.Forks = append(origin.Forks, fork.ID)
	if err := tx.Model(&origin).Update("forks", origin.Forks).Error; err != nil {
		log.Warn().Err(err).Uint("post", origin.ID).Uint("fork", fork.ID).
			Msg("Fork created but the origin post was not updated...")
		return fork, err
	}

	return GetPost(tx, fork.ID)
}
