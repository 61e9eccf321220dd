package services_test

import (
	"testing"

	"tipshare/pkg/internal/models"
	"tipshare/pkg/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommentRequiresExistingPost(t *testing.T) {
	db := openTestStore(t)
	alice := seedAccount(t, db, "alice")

	_, err := services.NewComment(db, alice, models.Comment{
		Content: "nice tip",
		PostID:  42,
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestListPostCommentsTopLevelOnly(t *testing.T) {
	db := openTestStore(t)
	alice := seedAccount(t, db, "alice")
	bob := seedAccount(t, db, "bob")
	category := seedCategory(t, db, "Cooking")
	post := seedPost(t, db, alice, category, 1)

	first, err := services.NewComment(db, bob, models.Comment{
		Content: "first",
		PostID:  post.ID,
	})
	require.NoError(t, err)

	second, err := services.NewComment(db, alice, models.Comment{
		Content: "second",
		PostID:  post.ID,
	})
	require.NoError(t, err)

	_, err = services.NewComment(db, alice, models.Comment{
		Content:  "a reply",
		PostID:   post.ID,
		ParentID: &first.ID,
	})
	require.NoError(t, err)

	items, err := services.ListPostComments(db, post.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Newest first, replies excluded.
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
	assert.Equal(t, "bob", items[1].Author.Name)
}

func TestDeleteCommentLeavesReplies(t *testing.T) {
	db := openTestStore(t)
	alice := seedAccount(t, db, "alice")
	category := seedCategory(t, db, "Cooking")
	post := seedPost(t, db, alice, category, 1)

	parent, err := services.NewComment(db, alice, models.Comment{
		Content: "parent",
		PostID:  post.ID,
	})
	require.NoError(t, err)
	reply, err := services.NewComment(db, alice, models.Comment{
		Content:  "reply",
		PostID:   post.ID,
		ParentID: &parent.ID,
	})
	require.NoError(t, err)

	require.NoError(t, services.DeleteComment(db, parent))

	_, err = services.GetComment(db, parent.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// No cascade: the reply stays, orphaned.
	_, err = services.GetComment(db, reply.ID)
	assert.NoError(t, err)
}

func TestToggleLikeCommentParity(t *testing.T) {
	db := openTestStore(t)
	alice := seedAccount(t, db, "alice")
	bob := seedAccount(t, db, "bob")
	category := seedCategory(t, db, "Cooking")
	post := seedPost(t, db, alice, category, 1)

	comment, err := services.NewComment(db, alice, models.Comment{
		Content: "nice",
		PostID:  post.ID,
	})
	require.NoError(t, err)

	liked, count, err := services.ToggleLikeComment(db, bob, comment)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	comment, _ = services.GetComment(db, comment.ID)
	liked, count, err = services.ToggleLikeComment(db, bob, comment)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, count)
}
