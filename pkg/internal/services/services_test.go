package services_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"tipshare/pkg/internal/database"
	"tipshare/pkg/internal/models"
	"tipshare/pkg/internal/services"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestStore(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "tipshare.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))

	return db
}

func seedAccount(t *testing.T, db *gorm.DB, name string) models.Account {
	t.Helper()

	account, err := services.NewAccount(db, name, name+"@example.com", "secret1", bcrypt.MinCost)
	require.NoError(t, err)
	return account
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()

	category, err := services.NewCategory(db, name, "", "")
	require.NoError(t, err)
	return category
}

func seedPost(t *testing.T, db *gorm.DB, author models.Account, category models.Category, n int) models.Post {
	t.Helper()

	post, err := services.NewPost(db, author, models.Post{
		Title:      fmt.Sprintf("Tip %d", n),
		Content:    fmt.Sprintf("Content of tip %d", n),
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	return post
}
