package models

type Category struct {
	BaseModel

	Name        string `json:"name" gorm:"uniqueIndex" validate:"required,max=50"`
	Description string `json:"description" validate:"max=200"`
	Icon        string `json:"icon"`

	Posts []Post `json:"posts" gorm:"foreignKey:CategoryID"`
}
