package forum

import (
	"context"
	"fmt"

	"github.com/starpoint/forum/internal/auth"
	"github.com/starpoint/forum/internal/model"
	"github.com/starpoint/forum/internal/post"
	"github.com/starpoint/forum/internal/reply"
	"github.com/starpoint/forum/internal/user"
)

// Service служит корневой точкой форума: сюда внедряются хранилища,
// здесь же применяется политика авторизации публикаций.
// Политика одна на весь сервис: посты и ответы не могут разойтись.
type Service struct {
	PostStore  post.PostStorage
	ReplyStore reply.ReplyStorage
	UserStore  user.UserStorage

	// RequireAuthForPosting - требовать сессию для создания постов и ответов
	RequireAuthForPosting bool
}

func NewService(posts post.PostStorage, replies reply.ReplyStorage, users user.UserStorage, requireAuth bool) *Service {
	return &Service{
		PostStore:             posts,
		ReplyStore:            replies,
		UserStore:             users,
		RequireAuthForPosting: requireAuth,
	}
}

// проверяет политику публикации до обращения к хранилищу
func (s *Service) checkPostingAllowed(ctx context.Context) error {
	if !s.RequireAuthForPosting {
		return nil
	}
	if _, err := auth.GetUserIDFromContext(ctx); err != nil {
		return fmt.Errorf("posting requires login: %w", ErrUnauthenticated)
	}
	return nil
}

func (s *Service) CreatePost(ctx context.Context, content string) (*model.Post, error) {
	if err := s.checkPostingAllowed(ctx); err != nil {
		return nil, err
	}

	p, err := s.PostStore.CreatePost(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}
	return p, nil
}

func (s *Service) ReplyToPost(ctx context.Context, postID, content string) (*model.Reply, error) {
	if err := s.checkPostingAllowed(ctx); err != nil {
		return nil, err
	}

	// пост должен существовать до записи ответа
	if _, err := s.PostStore.GetPostById(postID); err != nil {
		return nil, fmt.Errorf("could not reply to post %s: %w", postID, err)
	}

	r, err := s.ReplyStore.CreateReply(ctx, postID, content)
	if err != nil {
		return nil, fmt.Errorf("could not create reply: %w", err)
	}
	return r, nil
}

// ViewPost возвращает пост вместе с его ответами в порядке создания.
func (s *Service) ViewPost(postID string) (*model.Post, error) {
	p, err := s.PostStore.GetPostById(postID)
	if err != nil {
		return nil, err
	}

	replies, err := s.ReplyStore.GetReplies(postID)
	if err != nil {
		return nil, fmt.Errorf("could not get replies for post %s: %w", postID, err)
	}

	p.Replies = replies
	return p, nil
}

// ListPosts возвращает все посты. Недоступное хранилище - это ошибка
// (ErrUnavailable), а не пустой список: вызывающий должен отличать
// "постов нет" от "база лежит".
func (s *Service) ListPosts() ([]*model.Post, error) {
	posts, err := s.PostStore.GetAllPosts()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return posts, nil
}
