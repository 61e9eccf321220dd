package models

import (
	"gorm.io/datatypes"
)

// Account carries both the credential and the social graph of a user.
// Followers and Following are kept symmetric by the account services:
// B in A.Following if and only if A in B.Followers.
type Account struct {
	BaseModel

	Name     string `json:"name" gorm:"uniqueIndex" validate:"required,min=3,max=30"`
	Email    string `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	Password string `json:"-"`

	Avatar string `json:"avatar"`
	Bio    string `json:"bio" validate:"max=500"`

	Followers  datatypes.JSONSlice[uint] `json:"followers"`
	Following  datatypes.JSONSlice[uint] `json:"following"`
	SavedPosts datatypes.JSONSlice[uint] `json:"saved_posts"`
}
