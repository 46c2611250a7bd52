// Package server собирает HTTP-поверхность форума: маршруты, сессии,
// логирование запросов. Вся идентичность приходит явно через context -
// никаких неявных "текущих пользователей".
package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/starpoint/forum/internal/auth"
	"github.com/starpoint/forum/internal/exchange"
	"github.com/starpoint/forum/internal/forum"
	"github.com/starpoint/forum/internal/user"
)

type Server struct {
	Forum    *forum.Service
	Users    user.UserStorage
	Exchange *exchange.Client

	log *logrus.Logger
}

func New(forumService *forum.Service, users user.UserStorage, exchangeClient *exchange.Client, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{
		Forum:    forumService,
		Users:    users,
		Exchange: exchangeClient,
		log:      log,
	}
}

// Handler возвращает корневой роутер со всеми маршрутами
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/dashboard", auth.RequireAuth(http.HandlerFunc(s.handleDashboard))).Methods(http.MethodGet)
	r.Handle("/logout", auth.RequireAuth(http.HandlerFunc(s.handleLogout))).Methods(http.MethodGet)
	r.HandleFunc("/signup", s.handleSignup).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/signup_success", s.handleSignupSuccess).Methods(http.MethodGet)
	r.HandleFunc("/exchange_rates", s.handleExchangeRates).Methods(http.MethodGet)
	r.HandleFunc("/search", s.handleSearchRate).Methods(http.MethodGet)
	r.HandleFunc("/forum_post", s.handleForumPost).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/reply/{id}", s.handleReply).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/post/{id}", s.handleViewPost).Methods(http.MethodGet)

	return s.loggingMiddleware(auth.SessionMiddleware(r))
}

// statusRecorder запоминает статус ответа для лога
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
