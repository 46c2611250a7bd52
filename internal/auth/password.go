package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword возвращает соленый bcrypt-дайджест.
// Один и тот же пароль дает разные дайджесты при повторных вызовах.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword сообщает, получен ли дайджест из этого пароля.
// Случая ошибки нет: любой невалидный вход - это просто false.
func CheckPassword(digest, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
