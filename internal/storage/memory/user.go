package memory

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/starpoint/forum/internal/auth"
	"github.com/starpoint/forum/internal/forum"
	"github.com/starpoint/forum/internal/model"
)

type UserMemoryStorage struct {
	mu        sync.Mutex
	users     map[string]*model.User // username -> user
	emails    map[string]string      // email -> username
	passwords map[string]string      // username -> bcrypt-дайджест
	nextId    int
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:     make(map[string]*model.User),
		emails:    make(map[string]string),
		passwords: make(map[string]string),
		nextId:    1,
	}
}

func (s *UserMemoryStorage) RegisterUser(username, email, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// username и email глобально уникальны
	if _, exists := s.users[username]; exists {
		return nil, fmt.Errorf("username %s: %w", username, forum.ErrDuplicate)
	}
	if _, exists := s.emails[email]; exists {
		return nil, fmt.Errorf("email %s: %w", email, forum.ErrDuplicate)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	id := strconv.Itoa(s.nextId)
	s.nextId++

	user := &model.User{
		ID:       id,
		Username: username,
		Email:    email,
	}

	s.users[username] = user
	s.emails[email] = username
	s.passwords[username] = hashedPassword

	return user, nil
}

func (s *UserMemoryStorage) LoginUser(username, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[username]
	if !exists {
		return "", fmt.Errorf("user %s: %w", username, forum.ErrInvalidCredentials)
	}

	hashedPassword, ok := s.passwords[username]
	if !ok || !auth.CheckPassword(hashedPassword, password) {
		return "", fmt.Errorf("user %s: %w", username, forum.ErrInvalidCredentials)
	}

	userIDInt, err := strconv.Atoi(user.ID)
	if err != nil {
		return "", fmt.Errorf("invalid user ID %q: %w", user.ID, err)
	}

	return auth.IssueSessionToken(uint(userIDInt), user.Username)
}

func (s *UserMemoryStorage) FindUserByUsername(username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[username]
	if !exists {
		return nil, fmt.Errorf("user %s: %w", username, forum.ErrNotFound)
	}

	return user, nil
}

func (s *UserMemoryStorage) GetUserById(id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}

	return nil, fmt.Errorf("user %s: %w", id, forum.ErrNotFound)
}
