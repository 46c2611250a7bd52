package post

import (
	"context"

	"github.com/starpoint/forum/internal/model"
)

// Посты append-only: редактирования и удаления нет.
type PostStorage interface {
	CreatePost(ctx context.Context, content string) (*model.Post, error)
	GetPostById(id string) (*model.Post, error)
	GetAllPosts() ([]*model.Post, error)
}
