package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jinzhu/gorm"

	"github.com/starpoint/forum/internal/forum"
	"github.com/starpoint/forum/internal/model"
	"github.com/starpoint/forum/models"
)

type ReplyPostgresStorage struct{}

func NewReplyPostgresStorage() *ReplyPostgresStorage {
	return &ReplyPostgresStorage{}
}

func toReplyModel(reply *models.Reply) *model.Reply {
	return &model.Reply{
		ID:       fmt.Sprint(reply.ID),
		PostID:   fmt.Sprint(reply.PostID),
		Content:  reply.Content,
		AuthorID: authorID(reply.UserID),
	}
}

func (s *ReplyPostgresStorage) CreateReply(ctx context.Context, postID, content string) (*model.Reply, error) {
	if content == "" {
		return nil, fmt.Errorf("reply: %w", forum.ErrEmptyContent)
	}

	postIDint, err := strconv.Atoi(postID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID %q: %w", postID, forum.ErrNotFound)
	}
	postIDUint := uint(postIDint)

	// родительский пост обязан существовать
	var post models.Post
	err = DB.First(&post, postIDUint).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("post %s: %w", postID, forum.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post: %w", err)
	}

	reply := &models.Reply{
		PostID:  postIDUint,
		UserID:  authorFromContext(ctx),
		Content: content,
	}

	err = DB.Create(reply).Error
	if err != nil {
		return nil, fmt.Errorf("could not create reply: %w", err)
	}

	return toReplyModel(reply), nil
}

// GetReplies возвращает ответы на пост в порядке создания
func (s *ReplyPostgresStorage) GetReplies(postID string) ([]*model.Reply, error) {
	postIDint, err := strconv.Atoi(postID)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID %q: %w", postID, forum.ErrNotFound)
	}

	var replies []models.Reply
	err = DB.Where("post_id = ?", uint(postIDint)).Order("id asc").Find(&replies).Error
	if err != nil {
		return nil, fmt.Errorf("could not get replies: %w", err)
	}

	results := make([]*model.Reply, 0, len(replies))
	for i := range replies {
		results = append(results, toReplyModel(&replies[i]))
	}

	return results, nil
}
