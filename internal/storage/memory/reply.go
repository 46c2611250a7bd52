package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/starpoint/forum/internal/forum"
	"github.com/starpoint/forum/internal/model"
	"github.com/starpoint/forum/internal/post"
)

type ReplyMemoryStorage struct {
	mu          sync.Mutex
	replies     map[string][]*model.Reply // postID -> ответы в порядке создания
	nextID      int                       // Для хранения актуального ID (можно было использовать UUID)
	postStorage post.PostStorage          // Хранилище постов (внедрение зависимости (DI))
}

func NewReplyMemoryStorage(postStore post.PostStorage) *ReplyMemoryStorage {
	return &ReplyMemoryStorage{
		replies:     make(map[string][]*model.Reply),
		nextID:      1,
		postStorage: postStore,
	}
}

func (s *ReplyMemoryStorage) CreateReply(ctx context.Context, postID, content string) (*model.Reply, error) {
	if content == "" {
		return nil, fmt.Errorf("reply: %w", forum.ErrEmptyContent)
	}

	// родительский пост обязан существовать
	if _, err := s.postStorage.GetPostById(postID); err != nil {
		return nil, fmt.Errorf("post %s: %w", postID, forum.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.nextID)
	s.nextID++

	reply := &model.Reply{
		ID:       id,
		PostID:   postID,
		Content:  content,
		AuthorID: authorFromContext(ctx),
	}

	// append сохраняет порядок создания
	s.replies[postID] = append(s.replies[postID], reply)

	return reply, nil
}

func (s *ReplyMemoryStorage) GetReplies(postID string) ([]*model.Reply, error) {
	if _, err := s.postStorage.GetPostById(postID); err != nil {
		return nil, fmt.Errorf("post %s: %w", postID, forum.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replies := make([]*model.Reply, len(s.replies[postID]))
	copy(replies, s.replies[postID])

	return replies, nil
}
