package models

import (
	"gorm.io/datatypes"
)

// Comment threads one level deep: a reply points to a top-level comment
// through ParentID and is never itself a reply target.
type Comment struct {
	BaseModel

	Content string `json:"content" validate:"required"`

	PostID uint `json:"post_id"`
	Post   Post `json:"-"`

	ParentID *uint    `json:"parent_id"`
	Parent   *Comment `json:"parent" gorm:"foreignKey:ParentID"`

	AuthorID uint    `json:"author_id"`
	Author   Account `json:"author"`

	Likes datatypes.JSONSlice[uint] `json:"likes"`
}
