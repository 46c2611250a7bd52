package user

import (
	"github.com/starpoint/forum/internal/model"
)

type UserStorage interface {
	RegisterUser(username, email, password string) (*model.User, error)
	LoginUser(username, password string) (string, error) // JWT для сессионной cookie
	FindUserByUsername(username string) (*model.User, error)
	GetUserById(id string) (*model.User, error)
}
