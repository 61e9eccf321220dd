package models

import (
	"time"

	"gorm.io/datatypes"
)

// PostEdit is one entry of a post's edit history: the body as it was
// right before an update was applied.
type PostEdit struct {
	Content  string    `json:"content"`
	EditedAt time.Time `json:"edited_at"`
}

type Post struct {
	BaseModel

	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content" validate:"max=10000"`

	Tags   datatypes.JSONSlice[string] `json:"tags"`
	Images datatypes.JSONSlice[string] `json:"images"`

	Likes datatypes.JSONSlice[uint] `json:"likes"`
	Views int64                     `json:"views"`

	// ForkedFromID is set at creation only and never mutated afterwards;
	// Forks is append-only.
	ForkedFromID *uint                     `json:"forked_from_id"`
	ForkedFrom   *Post                     `json:"forked_from" gorm:"foreignKey:ForkedFromID"`
	Forks        datatypes.JSONSlice[uint] `json:"forks"`

	EditHistory datatypes.JSONSlice[PostEdit] `json:"edit_history"`

	CategoryID uint     `json:"category_id"`
	Category   Category `json:"category"`

	AuthorID uint    `json:"author_id"`
	Author   Account `json:"author"`
}
