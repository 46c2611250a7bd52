package reply

import (
	"context"

	"github.com/starpoint/forum/internal/model"
)

type ReplyStorage interface {
	CreateReply(ctx context.Context, postID, content string) (*model.Reply, error)
	GetReplies(postID string) ([]*model.Reply, error) // в порядке создания
}
