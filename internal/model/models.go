package model

// Типы для внешнего слоя (HTTP, шаблоны). ID - строки,
// преобразование из uint происходит на границе хранилища.

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Post struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	AuthorID string   `json:"authorId"`
	Replies  []*Reply `json:"replies"`
}

type Reply struct {
	ID       string `json:"id"`
	PostID   string `json:"postId"`
	Content  string `json:"content"`
	AuthorID string `json:"authorId"`
}
