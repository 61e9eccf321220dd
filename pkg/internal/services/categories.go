package services

import (
	"errors"
	"fmt"

	"tipshare/pkg/internal/models"

	"gorm.io/gorm"
)

const DefaultCategoryIcon = "📝"

func ListCategory(tx *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := tx.Order("name ASC").Find(&categories).Error

	return categories, err
}

func GetCategory(tx *gorm.DB, id uint) (models.Category, error) {
	var category models.Category
	if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return category, fmt.Errorf("%w: category #%d", ErrNotFound, id)
		}
		return category, err
	}
	return category, nil
}

func NewCategory(tx *gorm.DB, name, description, icon string) (models.Category, error) {
	var probe models.Category
	if err := tx.Where("name = ?", name).First(&probe).Error; err == nil {
		return probe, fmt.Errorf("%w: category %s", ErrConflict, name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return probe, err
	}

	if len(icon) == 0 {
		icon = DefaultCategoryIcon
	}

	category := models.Category{
		Name:        name,
		Description: description,
		Icon:        icon,
	}

	err := tx.Create(&category).Error

	return category, err
}
