package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/starpoint/forum/internal/auth"
	"github.com/starpoint/forum/internal/exchange"
	"github.com/starpoint/forum/internal/forum"
	"github.com/starpoint/forum/internal/model"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, indexView, nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, http.StatusOK, loginView, nil)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	token, err := s.Users.LoginUser(username, password)
	if err != nil {
		// неверные креденшалы - отдельная страница, не голый 401
		s.log.WithField("username", username).Warn("login failed")
		s.render(w, http.StatusUnauthorized, loginFailedView, nil)
		return
	}

	auth.SetSessionCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	// RequireAuth гарантирует, что userID в контексте есть
	userID, err := auth.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	u, err := s.Users.GetUserById(fmt.Sprint(userID))
	if err != nil {
		// сессия указывает на несуществующего пользователя - сбрасываем ее
		auth.ClearSessionCookie(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	s.render(w, http.StatusOK, dashboardView, u)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, http.StatusOK, signupView, nil)
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")
	password := r.FormValue("password")

	_, err := s.Users.RegisterUser(username, email, password)
	if errors.Is(err, forum.ErrDuplicate) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, "Username or email already exists!")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("signup failed")
		http.Error(w, "could not sign up", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/signup_success", http.StatusSeeOther)
}

func (s *Server) handleSignupSuccess(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `Sign up complete, proceed to login from here <a href="/login">Log in</a>`)
}

// переводит ошибку фида в HTTP-статус
func exchangeStatus(err error) int {
	var upstream *exchange.UpstreamError
	switch {
	case errors.Is(err, exchange.ErrNoData), errors.Is(err, exchange.ErrRateNotFound):
		return http.StatusNotFound
	case errors.As(err, &upstream):
		return upstream.Status
	default:
		return http.StatusInternalServerError
	}
}

func exchangeMessage(err error) string {
	var upstream *exchange.UpstreamError
	switch {
	case errors.Is(err, exchange.ErrNoData):
		return "No exchange rates data found"
	case errors.Is(err, exchange.ErrRateNotFound):
		return "Exchange rate not found for the specified currency code"
	case errors.As(err, &upstream):
		return "Failed to fetch exchange rates"
	default:
		return err.Error()
	}
}

func (s *Server) handleExchangeRates(w http.ResponseWriter, r *http.Request) {
	rates, err := s.Exchange.GetRates(r.Context())
	if err != nil {
		s.log.WithError(err).Warn("exchange rates fetch failed")
		jsonError(w, exchangeStatus(err), exchangeMessage(err))
		return
	}

	s.render(w, http.StatusOK, exchangeRatesView, ratesPageData{Rates: rates})
}

func (s *Server) handleSearchRate(w http.ResponseWriter, r *http.Request) {
	currencyCode := r.URL.Query().Get("currency_code")
	if currencyCode == "" {
		// без параметра запрос к upstream не выполняется
		jsonError(w, http.StatusBadRequest, "Currency code parameter is required")
		return
	}

	rate, err := s.Exchange.SearchRate(r.Context(), currencyCode)
	if err != nil {
		s.log.WithError(err).Warn("exchange rate search failed")
		jsonError(w, exchangeStatus(err), exchangeMessage(err))
		return
	}

	code := exchange.NormalizeCode(currencyCode)
	writeJSON(w, http.StatusOK, map[string]float64{code: rate})
}

func (s *Server) handleForumPost(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		content := r.FormValue("post_content")

		post, err := s.Forum.CreatePost(r.Context(), content)
		if errors.Is(err, forum.ErrUnauthenticated) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if errors.Is(err, forum.ErrEmptyContent) {
			http.Error(w, "post content is required", http.StatusBadRequest)
			return
		}
		if err != nil {
			s.log.WithError(err).Error("post creation failed")
			http.Error(w, "could not create post", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/post/"+post.ID, http.StatusSeeOther)
		return
	}

	posts, err := s.Forum.ListPosts()
	if err != nil {
		// база лежит - это 503, а не пустая страница
		s.log.WithError(err).Error("post listing failed")
		http.Error(w, "posts are temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	s.render(w, http.StatusOK, postsView, struct{ Posts []*model.Post }{Posts: posts})
}

func (s *Server) handleReply(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	if r.Method == http.MethodPost {
		content := r.FormValue("reply_content")

		_, err := s.Forum.ReplyToPost(r.Context(), postID, content)
		if errors.Is(err, forum.ErrUnauthenticated) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if errors.Is(err, forum.ErrNotFound) {
			s.render(w, http.StatusNotFound, notFoundView, nil)
			return
		}
		if errors.Is(err, forum.ErrEmptyContent) {
			http.Error(w, "reply content is required", http.StatusBadRequest)
			return
		}
		if err != nil {
			s.log.WithError(err).Error("reply creation failed")
			http.Error(w, "could not create reply", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/post/"+postID, http.StatusSeeOther)
		return
	}

	post, err := s.Forum.ViewPost(postID)
	if errors.Is(err, forum.ErrNotFound) {
		s.render(w, http.StatusNotFound, notFoundView, nil)
		return
	}
	if err != nil {
		s.log.WithError(err).Error("reply form failed")
		http.Error(w, "could not load post", http.StatusInternalServerError)
		return
	}

	s.render(w, http.StatusOK, replyView, postPageData{Post: post})
}

func (s *Server) handleViewPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	post, err := s.Forum.ViewPost(postID)
	if errors.Is(err, forum.ErrNotFound) {
		s.render(w, http.StatusNotFound, notFoundView, nil)
		return
	}
	if err != nil {
		s.log.WithError(err).Error("post view failed")
		http.Error(w, "could not load post", http.StatusInternalServerError)
		return
	}

	s.render(w, http.StatusOK, postView, postPageData{Post: post})
}
