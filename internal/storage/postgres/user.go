package postgres

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/starpoint/forum/internal/auth"
	"github.com/starpoint/forum/internal/forum"
	"github.com/starpoint/forum/internal/model"
	"github.com/starpoint/forum/models"
)

type UserPostgresStorage struct{}

func NewUserPostgresStorage() *UserPostgresStorage {
	return &UserPostgresStorage{}
}

func (s *UserPostgresStorage) RegisterUser(username, email, password string) (*model.User, error) {
	// проверка - не заняты ли username или email
	var existUser models.User
	err := DB.Where("username = ? OR email = ?", username, email).First(&existUser).Error
	if err == nil {
		return nil, fmt.Errorf("username or email is taken: %w", forum.ErrDuplicate)
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("could not check existing user: %w", err)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}

	err = DB.Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &model.User{
		ID:       fmt.Sprint(user.ID),
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (s *UserPostgresStorage) LoginUser(username, password string) (string, error) {
	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		// не раскрываем, что именно не совпало
		return "", fmt.Errorf("user %s: %w", username, forum.ErrInvalidCredentials)
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", fmt.Errorf("user %s: %w", username, forum.ErrInvalidCredentials)
	}

	return auth.IssueSessionToken(user.ID, user.Username)
}

func (s *UserPostgresStorage) FindUserByUsername(username string) (*model.User, error) {
	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("user %s: %w", username, forum.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not find user: %w", err)
	}

	return &model.User{
		ID:       fmt.Sprint(user.ID),
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (s *UserPostgresStorage) GetUserById(id string) (*model.User, error) {
	var user models.User
	err := DB.First(&user, id).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, fmt.Errorf("user %s: %w", id, forum.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}

	return &model.User{
		ID:       fmt.Sprint(user.ID),
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
