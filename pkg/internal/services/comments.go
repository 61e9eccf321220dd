package services

import (
	"errors"
	"fmt"

	"tipshare/pkg/internal/models"

	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func GetComment(tx *gorm.DB, id uint) (models.Comment, error) {
	var item models.Comment
	if err := tx.Preload("Author").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, fmt.Errorf("%w: comment #%d", ErrNotFound, id)
		}
		return item, err
	}

	return item, nil
}

// ListPostComments returns the top-level comments of a post, newest first.
// Replies are not expanded.
func ListPostComments(tx *gorm.DB, postId uint) ([]models.Comment, error) {
	var items []models.Comment
	if err := tx.Preload("Author").
		Where("post_id = ? AND parent_id IS NULL", postId).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

func NewComment(tx *gorm.DB, user models.Account, item models.Comment) (models.Comment, error) {
	var post models.Post
	if err := tx.Select("id").Where("id = ?", item.PostID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, fmt.Errorf("%w: post #%d", ErrNotFound, item.PostID)
		}
		return item, err
	}

	item.AuthorID = user.ID
	item.Likes = datatypes.NewJSONSlice([]uint{})

	if err := tx.Create(&item).Error; err != nil {
		return item, err
	}

	return GetComment(tx, item.ID)
}

func DeleteComment(tx *gorm.DB, item models.Comment) error {
	return tx.Delete(&item).Error
}

// ToggleLikeComment mirrors the post like toggle, scoped to the comment's
// own like set.
func ToggleLikeComment(tx *gorm.DB, user models.Account, item models.Comment) (bool, int, error) {
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
