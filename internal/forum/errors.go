package forum

import "errors"

// Базовая таксономия ошибок форума. Слои оборачивают их через
// fmt.Errorf("...: %w", err), проверка - errors.Is.
var (
	// ErrNotFound - пост (или пользователь) не существует
	ErrNotFound = errors.New("not found")
	// ErrDuplicate - username или email уже заняты
	ErrDuplicate = errors.New("already exists")
	// ErrEmptyContent - пустой текст поста/ответа
	ErrEmptyContent = errors.New("content is empty")
	// ErrUnavailable - хранилище недоступно (ошибка инфраструктуры, можно повторить запрос)
	ErrUnavailable = errors.New("storage unavailable")
	// ErrUnauthenticated - операция требует активной сессии
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidCredentials - неверная пара логин/пароль
	ErrInvalidCredentials = errors.New("invalid username or password")
)
