package postgres

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/starpoint/forum/internal/auth"
	"github.com/starpoint/forum/internal/forum"
	"github.com/starpoint/forum/internal/model"
	"github.com/starpoint/forum/models"
)

type PostPostgresStorage struct{}

func NewPostPostgresStorage() *PostPostgresStorage {
	return &PostPostgresStorage{}
}

// авторство опционально: политику "нужен ли логин" применяет сервис,
// хранилище просто пишет то, что есть в контексте
func authorFromContext(ctx context.Context) *uint {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil
	}
	return &userID
}

func authorID(userID *uint) string {
	if userID == nil {
		return ""
	}
	return fmt.Sprint(*userID)
}

func toPostModel(post *models.Post) *model.Post {
	return &model.Post{
		ID:       fmt.Sprint(post.ID),
		Content:  post.Content,
		AuthorID: authorID(post.UserID),
	}
}

func (s *PostPostgresStorage) CreatePost(ctx context.Context, content string) (*model.Post, error) {
	if content == "" {
		return nil, fmt.Errorf("post: %w", forum.ErrEmptyContent)
	}

	post := &models.Post{
		Content: content,
		UserID:  authorFromContext(ctx),
	}

	err := DB.Create(post).Error
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	return toPostModel(post), nil
}

func (s *PostPostgresStorage) GetPostById(id string) (*model.Post, error) {
	var post models.Post
	err := DB.First(&post, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("post %s: %w", id, forum.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}

	return toPostModel(&post), nil
}

func (s *PostPostgresStorage) GetAllPosts() ([]*model.Post, error) {
	var posts []models.Post
	err := DB.Order("id asc").Find(&posts).Error
	if err != nil {
		// ошибку хранилища отдаем наверх - пустой список означает
		// только "постов нет", никогда "база недоступна"
		return nil, fmt.Errorf("could not get posts: %w", err)
	}

	var results []*model.Post
	for i := range posts {
		results = append(results, toPostModel(&posts[i]))
	}

	return results, nil
}
