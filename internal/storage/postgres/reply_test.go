package postgres

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starpoint/forum/internal/forum"
)

func TestReplyPostgresStorage_CreateReply(t *testing.T) {
	storage := NewReplyPostgresStorage()

	t.Run("Successful reply creation", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		postID := createTestPost(t, userID, "post content")
		ctx := createUserContext(userID)

		reply, err := storage.CreateReply(ctx, storageID(postID), "reply content")
		require.NoError(t, err)
		assert.NotEmpty(t, reply.ID)
		assert.Equal(t, storageID(postID), reply.PostID)
		assert.Equal(t, "reply content", reply.Content)
		assert.Equal(t, storageID(userID), reply.AuthorID)
	})

	t.Run("Reply to non-existent post", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		ctx := createUserContext(createTestUser(t))

		_, err := storage.CreateReply(ctx, "99999", "reply content")
		assert.Error(t, err)
		assert.ErrorIs(t, err, forum.ErrNotFound)
	})

	t.Run("Reply with malformed post ID", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		ctx := createUserContext(createTestUser(t))

		_, err := storage.CreateReply(ctx, "not-a-number", "reply content")
		assert.Error(t, err)
		assert.ErrorIs(t, err, forum.ErrNotFound)
	})

	t.Run("Empty reply content", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		postID := createTestPost(t, userID, "post content")
		ctx := createUserContext(userID)

		_, err := storage.CreateReply(ctx, storageID(postID), "")
		assert.Error(t, err)
		assert.ErrorIs(t, err, forum.ErrEmptyContent)
	})

	t.Run("Anonymous reply without user in context", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		postID := createTestPost(t, userID, "post content")

		reply, err := storage.CreateReply(context.Background(), storageID(postID), "anonymous reply")
		require.NoError(t, err)
		assert.Empty(t, reply.AuthorID)
	})
}

func TestReplyPostgresStorage_GetReplies(t *testing.T) {
	storage := NewReplyPostgresStorage()

	t.Run("Replies come back in creation order", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		postID := createTestPost(t, userID, "post content")
		ctx := createUserContext(userID)

		for i := 1; i <= 3; i++ {
			_, err := storage.CreateReply(ctx, storageID(postID), "reply "+strconv.Itoa(i))
			require.NoError(t, err)
		}

		replies, err := storage.GetReplies(storageID(postID))
		require.NoError(t, err)
		require.Len(t, replies, 3)
		assert.Equal(t, "reply 1", replies[0].Content)
		assert.Equal(t, "reply 2", replies[1].Content)
		assert.Equal(t, "reply 3", replies[2].Content)
	})

	t.Run("Post without replies yields empty list", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		postID := createTestPost(t, userID, "lonely post")

		replies, err := storage.GetReplies(storageID(postID))
		require.NoError(t, err)
		assert.Empty(t, replies)
	})

	t.Run("Replies are scoped to their post", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t)
		firstPost := createTestPost(t, userID, "first post")
		secondPost := createTestPost(t, userID, "second post")
		ctx := createUserContext(userID)

		_, err := storage.CreateReply(ctx, storageID(firstPost), "to first")
		require.NoError(t, err)
		_, err = storage.CreateReply(ctx, storageID(secondPost), "to second")
		require.NoError(t, err)

		replies, err := storage.GetReplies(storageID(firstPost))
		require.NoError(t, err)
		require.Len(t, replies, 1)
		assert.Equal(t, "to first", replies[0].Content)
	})
}
