package forum_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starpoint/forum/internal/auth"
	"github.com/starpoint/forum/internal/forum"
	"github.com/starpoint/forum/internal/model"
	"github.com/starpoint/forum/internal/storage/memory"
)

func newTestService(requireAuth bool) *forum.Service {
	postStore := memory.NewPostMemoryStorage()
	replyStore := memory.NewReplyMemoryStorage(postStore)
	userStore := memory.NewUserMemoryStorage()
	return forum.NewService(postStore, replyStore, userStore, requireAuth)
}

func authedContext(userID uint) context.Context {
	return auth.WithUserID(context.Background(), userID)
}

func TestService_CreatePost(t *testing.T) {
	t.Run("Authenticated user creates a post", func(t *testing.T) {
		service := newTestService(true)

		post, err := service.CreatePost(authedContext(1), "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", post.Content)
		assert.Equal(t, "1", post.AuthorID)
	})

	t.Run("Posting without session is rejected when auth is required", func(t *testing.T) {
		service := newTestService(true)

		_, err := service.CreatePost(context.Background(), "hello")
		assert.Error(t, err)
		assert.ErrorIs(t, err, forum.ErrUnauthenticated)
	})

	t.Run("Anonymous posting allowed when auth is not required", func(t *testing.T) {
		service := newTestService(false)

		post, err := service.CreatePost(context.Background(), "anonymous hello")
		require.NoError(t, err)
		assert.Empty(t, post.AuthorID)
	})

	t.Run("Empty content is rejected", func(t *testing.T) {
		service := newTestService(true)

		_, err := service.CreatePost(authedContext(1), "")
		assert.Error(t, err)
		assert.ErrorIs(t, err, forum.ErrEmptyContent)
	})
}

func TestService_ReplyToPost(t *testing.T) {
	t.Run("Reply to existing post appears in creation order", func(t *testing.T) {
		service := newTestService(true)
		ctx := authedContext(1)

		post, err := service.CreatePost(ctx, "hello")
		require.NoError(t, err)

		_, err = service.ReplyToPost(ctx, post.ID, "first reply")
		require.NoError(t, err)
		_, err = service.ReplyToPost(ctx, post.ID, "second reply")
		require.NoError(t, err)

		viewed, err := service.ViewPost(post.ID)
		require.NoError(t, err)
		require.Len(t, viewed.Replies, 2)
		assert.Equal(t, "first reply", viewed.Replies[0].Content)
		assert.Equal(t, "second reply", viewed.Replies[1].Content)
	})

	t.Run("Reply to non-existent post", func(t *testing.T) {
		service := newTestService(true)

		_, err := service.ReplyToPost(authedContext(1), "99999", "reply")
		assert.Error(t, err)
		assert.ErrorIs(t, err, forum.ErrNotFound)
	})

	t.Run("Reply without session is rejected when auth is required", func(t *testing.T) {
		service := newTestService(true)
		ctx := authedContext(1)

		post, err := service.CreatePost(ctx, "hello")
		require.NoError(t, err)

		_, err = service.ReplyToPost(context.Background(), post.ID, "reply")
		assert.Error(t, err)
		assert.ErrorIs(t, err, forum.ErrUnauthenticated)
	})
}

func TestService_ViewPost(t *testing.T) {
	service := newTestService(true)

	t.Run("Missing post", func(t *testing.T) {
		_, err := service.ViewPost("12345")
		assert.Error(t, err)
		assert.ErrorIs(t, err, forum.ErrNotFound)
	})
}

// failingPostStorage имитирует недоступную базу
type failingPostStorage struct{}

func (failingPostStorage) CreatePost(ctx context.Context, content string) (*model.Post, error) {
	return nil, errors.New("connection refused")
}

func (failingPostStorage) GetPostById(id string) (*model.Post, error) {
	return nil, errors.New("connection refused")
}

func (failingPostStorage) GetAllPosts() ([]*model.Post, error) {
	return nil, errors.New("connection refused")
}

func TestService_ListPosts(t *testing.T) {
	t.Run("Posts in creation order", func(t *testing.T) {
		service := newTestService(true)
		ctx := authedContext(1)

		first, err := service.CreatePost(ctx, "first")
		require.NoError(t, err)
		second, err := service.CreatePost(ctx, "second")
		require.NoError(t, err)

		posts, err := service.ListPosts()
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, first.ID, posts[0].ID)
		assert.Equal(t, second.ID, posts[1].ID)
	})

	t.Run("Unreachable storage is an error, not an empty list", func(t *testing.T) {
		service := forum.NewService(failingPostStorage{}, nil, nil, true)

		_, err := service.ListPosts()
		assert.Error(t, err)
		assert.ErrorIs(t, err, forum.ErrUnavailable)
	})
}

// Сценарий целиком: регистрация -> логин -> пост -> ответ -> просмотр
func TestService_EndToEndScenario(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret_key_for_jwt")

	postStore := memory.NewPostMemoryStorage()
	replyStore := memory.NewReplyMemoryStorage(postStore)
	userStore := memory.NewUserMemoryStorage()
	service := forum.NewService(postStore, replyStore, userStore, true)

	alice, err := userStore.RegisterUser("alice", "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "1", alice.ID)

	token, err := userStore.LoginUser("alice", "pw1")
	require.NoError(t, err)

	userID, err := auth.ParseSessionToken(token)
	require.NoError(t, err)
	ctx := auth.WithUserID(context.Background(), userID)

	post, err := service.CreatePost(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "1", post.ID)
	assert.Equal(t, "hello", post.Content)

	reply, err := service.ReplyToPost(ctx, post.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, "1", reply.ID)
	assert.Equal(t, post.ID, reply.PostID)

	viewed, err := service.ViewPost(post.ID)
	require.NoError(t, err)
	require.Len(t, viewed.Replies, 1)
	assert.Equal(t, "hi", viewed.Replies[0].Content)

	// неверный пароль - сессии нет
	_, err = userStore.LoginUser("alice", "wrong")
	assert.ErrorIs(t, err, forum.ErrInvalidCredentials)
}
