package services

import (
	"errors"
	"fmt"

	"tipshare/pkg/internal/models"

	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func GetAccount(tx *gorm.DB, id uint) (models.Account, error) {
	var account models.Account
	if err := tx.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, fmt.Errorf("%w: account #%d", ErrNotFound, id)
		}
		return account, err
	}
	return account, nil
}

func GetAccountByName(tx *gorm.DB, name string) (models.Account, error) {
	var account models.Account
	if err := tx.Where("name = ?", name).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, fmt.Errorf("%w: account %s", ErrNotFound, name)
		}
		return account, err
	}
	return account, nil
}

func NewAccount(tx *gorm.DB, name, email, password string, cost int) (models.Account, error) {
	var probe models.Account
	if err := tx.Where("name = ? OR email = ?", name, email).First(&probe).Error; err == nil {
		return probe, fmt.Errorf("%w: username or email is already taken", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return probe, err
	}

	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return models.Account{}, err
	}

	account := models.Account{
		Name:       name,
		Email:      email,
		Password:   string(hash),
		Followers:  datatypes.NewJSONSlice([]uint{}),
		Following:  datatypes.NewJSONSlice([]uint{}),
		SavedPosts: datatypes.NewJSONSlice([]uint{}),
	}

	err = tx.Create(&account).Error
	return account, err
}

// CheckCredential resolves an account by username or email and verifies the
// given password against its stored hash.
func CheckCredential(tx *gorm.DB, identifier, password string) (models.Account, error) {
	var account models.Account
	if err := tx.Where("name = ? OR email = ?", identifier, identifier).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, fmt.Errorf("%w: no account matches %s", ErrUnauthenticated, identifier)
		}
		return account, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return account, fmt.Errorf("%w: password mismatch", ErrUnauthenticated)
	}

	return account, nil
}

// UpdateProfile replaces the caller's bio and avatar. Other fields are not
// reachable through this path.
func UpdateProfile(tx *gorm.DB, account models.Account, bio, avatar *string) (models.Account, error) {
	if bio != nil {
		account.Bio = *bio
	}
	if avatar != nil {
		account.Avatar = *avatar
	}

	err := tx.Model(&account).Updates(map[string]any{
		"bio":    account.Bio,
		"avatar": account.Avatar,
	}).Error

	return account, err
}

// FollowAccount adds target to the caller's following set and the caller to
// the target's followers set. The two writes are sequential and guarded by
// membership checks; there is no transaction around them, so a failure in
// between leaves the relation asymmetric until retried by the client.
func FollowAccount(tx *gorm.DB, user, target models.Account) error {
	if user.ID == target.ID {
		return fmt.Errorf("%w: cannot follow yourself", ErrInvalidOperation)
	}

	if !lo.Contains(user.Following, target.ID) {
		user.Following = append(user.Following, target.ID)
		if err := tx.Model(&user).Update("following", user.Following).Error; err != nil {
			return err
		}
	}

	if !lo.Contains(target.Followers, user.ID) {
		target.Followers = append(target.Followers, user.ID)
		if err := tx.Model(&target).Update("followers", target.Followers).Error; err != nil {
			return err
		}
	}

	return nil
}

// UnfollowAccount removes the relation from both sides with the same
// two-write caveat as FollowAccount.
func UnfollowAccount(tx *gorm.DB, user, target models.Account) error {
	user.Following = datatypes.NewJSONSlice(lo.Filter(user.Following, func(id uint, _ int) bool {
		return id != target.ID
	}))
	if err := tx.Model(&user).Update("following", user.Following).Error; err != nil {
		return err
	}

	target.Followers = datatypes.NewJSONSlice(lo.Filter(target.Followers, func(id uint, _ int) bool {
		return id != user.ID
	}))
	return tx.Model(&target).Update("followers", target.Followers).Error
}

// ToggleSavePost flips the membership of a post in the caller's saved set
// and reports the new membership.
func ToggleSavePost(tx *gorm.DB, user models.Account, postId uint) (bool, error) {
	saved := !lo.Contains(user.SavedPosts, postId)
	if saved {
		user.SavedPosts = append(user.SavedPosts, postId)
	} else {
		user.SavedPosts = datatypes.NewJSONSlice(lo.Filter(user.SavedPosts, func(id uint, _ int) bool {
			return id != postId
		}))
	}

	if err := tx.Model(&user).Update("saved_posts", user.SavedPosts).Error; err != nil {
		return saved, err
	}
	return saved, nil
}
