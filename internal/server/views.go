package server

import (
	"html/template"
	"net/http"

	"github.com/starpoint/forum/internal/exchange"
	"github.com/starpoint/forum/internal/model"
)

// Шаблоны нарочно минимальные: отрисовка страниц не является
// содержательной частью сервиса.
var (
	indexView = template.Must(template.New("index").Parse(`<html><body>
<h1>Starpoint Forum</h1>
<p><a href="/login">Log in</a> | <a href="/signup">Sign up</a> | <a href="/forum_post">Posts</a> | <a href="/exchange_rates">Exchange rates</a></p>
</body></html>`))

	loginView = template.Must(template.New("login").Parse(`<html><body>
<h1>Log in</h1>
<form method="POST" action="/login">
<input name="username" placeholder="username">
<input name="password" type="password" placeholder="password">
<button type="submit">Log in</button>
</form>
</body></html>`))

	loginFailedView = template.Must(template.New("login_failed").Parse(`<html><body>
<h1>Invalid username or password</h1>
<p><a href="/login">Try again</a></p>
</body></html>`))

	signupView = template.Must(template.New("signup").Parse(`<html><body>
<h1>Sign up</h1>
<form method="POST" action="/signup">
<input name="username" placeholder="username">
<input name="email" placeholder="email">
<input name="password" type="password" placeholder="password">
<button type="submit">Sign up</button>
</form>
</body></html>`))

	dashboardView = template.Must(template.New("dashboard").Parse(`<html><body>
<h1>Welcome, {{.Username}}</h1>
<p><a href="/forum_post">Forum posts</a> | <a href="/logout">Log out</a></p>
</body></html>`))

	postsView = template.Must(template.New("posts").Parse(`<html><body>
<h1>Posts</h1>
<form method="POST" action="/forum_post">
<textarea name="post_content"></textarea>
<button type="submit">Post</button>
</form>
<ul>
{{range .Posts}}<li><a href="/post/{{.ID}}">{{.Content}}</a></li>
{{end}}</ul>
</body></html>`))

	postView = template.Must(template.New("post").Parse(`<html><body>
<h1>Post {{.Post.ID}}</h1>
<p>{{.Post.Content}}</p>
<h2>Replies</h2>
<ul>
{{range .Post.Replies}}<li>{{.Content}}</li>
{{end}}</ul>
<p><a href="/reply/{{.Post.ID}}">Reply</a></p>
</body></html>`))

	replyView = template.Must(template.New("reply").Parse(`<html><body>
<h1>Reply to post {{.Post.ID}}</h1>
<p>{{.Post.Content}}</p>
<form method="POST" action="/reply/{{.Post.ID}}">
<textarea name="reply_content"></textarea>
<button type="submit">Reply</button>
</form>
</body></html>`))

	exchangeRatesView = template.Must(template.New("exchange_rates").Parse(`<html><body>
<h1>Exchange rates</h1>
<table>
<tr><th>Currency</th><th>Rate</th></tr>
{{range .Rates}}<tr><td>{{.CurrencyCode}}</td><td>{{.Rate}}</td></tr>
{{end}}</table>
</body></html>`))

	notFoundView = template.Must(template.New("not_found").Parse(`<html><body>
<h1>Not found</h1>
<p><a href="/">Home</a></p>
</body></html>`))
)

type postPageData struct {
	Post *model.Post
}

type ratesPageData struct {
	Rates []exchange.Rate
}

func (s *Server) render(w http.ResponseWriter, status int, view *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := view.Execute(w, data); err != nil {
		s.log.WithError(err).Error("failed to render view")
	}
}
