package models

import "github.com/jinzhu/gorm"

// UserID у поста и ответа - указатель: при REQUIRE_AUTH_FOR_POSTING=false
// публикация может быть анонимной.

type User struct {
	gorm.Model
	Username string `gorm:"unique;not null"`
	Email    string `gorm:"unique;not null"`
	Password string
}

type Post struct {
	gorm.Model
	Content string `gorm:"not null"`
	UserID  *uint
	Replies []Reply `gorm:"foreignkey:PostID"`
}

type Reply struct {
	gorm.Model
	Content string `gorm:"not null"`
	PostID  uint   `gorm:"not null"`
	UserID  *uint
}
