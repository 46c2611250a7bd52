// internal/auth/context.go
package auth

import (
	"context"
	"errors"
	"net/http"
)

type contextKey string

const userIDKey = contextKey("userID")

// Сохраняет userID в контексте
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Достает userID из контекста
func GetUserIDFromContext(ctx context.Context) (uint, error) {
	val := ctx.Value(userIDKey)
	id, ok := val.(uint)
	if !ok {
		return 0, errors.New("user ID not found in context")
	}
	return id, nil
}

// SessionMiddleware извлекает userID из сессионной cookie и помещает его в context.
// Отсутствие или невалидность cookie - не ошибка: запрос проходит дальше
// неаутентифицированным, решение принимает RequireAuth или сам обработчик.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := ParseSessionToken(cookie.Value)
		if err != nil {
			// просроченный или подделанный токен - пропускаем без идентичности
			next.ServeHTTP(w, r)
			return
		}

		ctx := WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth закрывает маршрут: без активной сессии - redirect на /login.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := GetUserIDFromContext(r.Context()); err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
