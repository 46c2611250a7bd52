package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/starpoint/forum/internal/auth"
	"github.com/starpoint/forum/internal/forum"
	"github.com/starpoint/forum/internal/model"
)

type PostMemoryStorage struct {
	mu     sync.Mutex
	posts  map[string]*model.Post
	nextId int // Для хранения актуального ID (можно было использовать UUID)
}

func NewPostMemoryStorage() *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:  make(map[string]*model.Post),
		nextId: 1,
	}
}

// автор берется из контекста, если он там есть; политику авторизации
// применяет сервис форума
func authorFromContext(ctx context.Context) string {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return ""
	}
	return fmt.Sprint(userID)
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, content string) (*model.Post, error) {
	if content == "" {
		return nil, fmt.Errorf("post: %w", forum.ErrEmptyContent)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextId)
	s.nextId++

	post := &model.Post{
		ID:       id,
		Content:  content,
		AuthorID: authorFromContext(ctx),
	}

	s.posts[id] = post
	return post, nil
}

func (s *PostMemoryStorage) GetPostById(id string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, fmt.Errorf("post %s: %w", id, forum.ErrNotFound)
	}

	return post, nil
}

func (s *PostMemoryStorage) GetAllPosts() ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []*model.Post
	for _, post := range s.posts {
		posts = append(posts, post)
	}

	// map не упорядочен - сортируем по числовому ID (порядок создания)
	sort.Slice(posts, func(i, j int) bool {
		a, _ := strconv.Atoi(posts[i].ID)
		b, _ := strconv.Atoi(posts[j].ID)
		return a < b
	})

	return posts, nil
}
