package services_test

import (
	"fmt"
	"strings"
	"testing"

	"tipshare/pkg/internal/models"
	"tipshare/pkg/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestNewPostDefaults(t *testing.T) {
	db := openTestStore(t)
	alice := seedAccount(t, db, "alice")
	category := seedCategory(t, db, "Cooking")

	post, err := services.NewPost(db, alice, models.Post{
		Title:      "T",
		Content:    "C",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, alice.ID, post.AuthorID)
	assert.Equal(t, "alice", post.Author.Name)
	assert.Equal(t, "Cooking", post.Category.Name)
	assert.EqualValues(t, 0, post.Views)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Forks)
	assert.Empty(t, post.EditHistory)
	assert.NotNil(t, []string(post.Tags))
}

func TestNewPostRequiresExistingCategory(t *testing.T) {
	db := openTestStore(t)
	alice := seedAccount(t, db, "alice")

	_, err := services.NewPost(db, alice, models.Post{
		Title:      "T",
		Content:    "C",
		CategoryID: 42,
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestIncreasePostViewsCountsEveryRead(t *testing.T) {
	db := openTestStore(t)
	alice := seedAccount(t, db, "alice")
	category := seedCategory(t, db, "Cooking")
	post := seedPost(t, db, alice, category, 1)

	const reads = 5
	for i := 0; i < reads; i++ {
		item, err := services.GetPost(db, post.ID)
		require.NoError(t, err)
		require.NoError(t, services.IncreasePostViews(db, &item))
	}

	item, err := services.GetPost(db, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, reads, item.Views)
}

func TestEditPostKeepsHistoryOfPriorBodies(t *testing.T) {
	db := openTestStore(t)
	alice := seedAccount(t, db, "alice")
	category := seedCategory(t, db, "Cooking")

	post, err := services.NewPost(db, alice, models.Post{
		Title:      "T",
		Content:    "v0",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	const updates = 3
	for i := 1; i <= updates; i++ {
		content := fmt.Sprintf("v%d", i)
		post, err = services.EditPost(db, post, services.PostUpdate{Content: &content})
		require.NoError(t, err)
	}

	assert.Equal(t, "v3", post.Content)
	require.Len(t, post.EditHistory, updates)
	for i, entry := range post.EditHistory {
		// Entry i is the body that was current right before update i.
		assert.Equal(t, fmt.Sprintf("v%d", i), entry.Content)
	}
}

func TestEditPostPartialOverwrite(t *testing.T) {
	db := openTestStore(t)
	alice := seedAccount(t, db, "alice")
	category := seedCategory(t, db, "Cooking")

	post, err := services.NewPost(db, alice, models.Post{
		Title:      "Original title",
		Content:    "Original content",
		CategoryID: category.ID,
		Tags:       datatypes.NewJSONSlice([]string{"a", "b"}),
	})
	require.NoError(t, err)

	title := "New title"
	post, err = services.EditPost(db, post, services.PostUpdate{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "New title", post.Title)
	assert.Equal(t, "Original content", post.Content)
	assert.Equal(t, []string{"a", "b"}, []string(post.Tags))

	// A present tag list replaces the old set, including with fewer entries.
	post, err = services.EditPost(db, post, services.PostUpdate{Tags: []string{"c"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, []string(post.Tags))
}

func TestToggleLikePostParity(t *testing.T) {
	db := openTestStore(t)
	alice := seedAccount(t, db, "alice")
	bob := seedAccount(t, db, "bob")
	category := seedCategory(t, db, "Cooking")
	post := seedPost(t, db, alice, category, 1)

	liked, count, err := services.ToggleLikePost(db, bob, post)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	post, _ = services.GetPost(db, post.ID)
	liked, count, err = services.ToggleLikePost(db, bob, post)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, count)

	post, _ = services.GetPost(db, post.ID)
	assert.Empty(t, post.Likes)
}

func TestForkPostRecordsProvenance(t *testing.T) {
	db := openTestStore(t)
	alice := seedAccount(t, db, "alice")
	bob := seedAccount(t, db, "bob")
	category := seedCategory(t, db, "Cooking")

	origin, err := services.NewPost(db, alice, models.Post{
		Title:      "T",
		Content:    "C",
		CategoryID: category.ID,
		Tags:       datatypes.NewJSONSlice([]string{"a"}),
	})
	require.NoError(t, err)

	fork, err := services.ForkPost(db, bob, origin)
	require.NoError(t, err)

	assert.Equal(t, services.ForkTitlePrefix+"T", fork.Title)
	assert.Equal(t, "C", fork.Content)
	assert.Equal(t, bob.ID, fork.AuthorID)
	require.NotNil(t, fork.ForkedFromID)
	assert.Equal(t, origin.ID, *fork.ForkedFromID)
	assert.Equal(t, []string{"a"}, []string(fork.Tags))
	assert.EqualValues(t, 0, fork.Views)
	assert.Empty(t, fork.Likes)
	assert.Empty(t, fork.Forks)

	origin, err = services.GetPost(db, origin.ID)
	require.NoError(t, err)
	assert.Contains(t, []uint(origin.Forks), fork.ID)
}

func TestListPostPagination(t *testing.T) {
	db := openTestStore(t)
	alice := seedAccount(t, db, "alice")
	category := seedCategory(t, db, "Cooking")

	const total = 25
	for i := 0; i < total; i++ {
		seedPost(t, db, alice, category, i)
	}

	count, err := services.CountPost(db)
	require.NoError(t, err)
	assert.EqualValues(t, total, count)
	assert.EqualValues(t, 3, services.TotalPages(count, 10))

	page, err := services.ListPost(db, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page, 10)
	// Newest first.
	assert.Equal(t, "Tip 24", page[0].Title)

	last, err := services.ListPost(db, 3, 10)
	require.NoError(t, err)
	assert.Len(t, last, 5)
}

func TestListPostFilters(t *testing.T) {
	db := openTestStore(t)
	alice := seedAccount(t, db, "alice")
	cooking := seedCategory(t, db, "Cooking")
	travel := seedCategory(t, db, "Travel")

	_, err := services.NewPost(db, alice, models.Post{
		Title:      "Perfect scrambled eggs",
		Content:    "Low heat is the whole trick",
		CategoryID: cooking.ID,
		Tags:       datatypes.NewJSONSlice([]string{"eggs", "breakfast"}),
	})
	require.NoError(t, err)
	_, err = services.NewPost(db, alice, models.Post{
		Title:      "Packing light",
		Content:    "One bag is enough",
		CategoryID: travel.ID,
		Tags:       datatypes.NewJSONSlice([]string{"luggage"}),
	})
	require.NoError(t, err)

	byCategory, err := services.ListPost(services.FilterPostWithCategory(db, travel.ID), 1, 10)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Packing light", byCategory[0].Title)

	byTag, err := services.ListPost(services.FilterPostWithTag(db, "eggs"), 1, 10)
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "Perfect scrambled eggs", byTag[0].Title)

	// Case-insensitive substring match against title or content.
	bySearch, err := services.ListPost(services.FilterPostWithFuzzySearch(db, "ONE BAG"), 1, 10)
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.True(t, strings.Contains(bySearch[0].Content, "One bag"))
}

func TestDeletePost(t *testing.T) {
	db := openTestStore(t)
	alice := seedAccount(t, db, "alice")
	category := seedCategory(t, db, "Cooking")
	post := seedPost(t, db, alice, category, 1)

	require.NoError(t, services.DeletePost(db, post))

	_, err := services.GetPost(db, post.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
