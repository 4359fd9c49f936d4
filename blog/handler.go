package blog

import "github.com/dmitrymomot/awesome"

// Handler serves the blog pages and the JSON API.
type Handler struct {
	store   *Store
	auth    *Auth
	limiter []awesome.Middleware
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithSignInLimiter installs middleware in front of POST /api/authenticate,
// typically middlewares.RateLimit.
func WithSignInLimiter(mw ...awesome.Middleware) HandlerOption {
	return func(h *Handler) {
		h.limiter = append(h.limiter, mw...)
	}
}

// NewHandler creates the blog handler.
func NewHandler(store *Store, auth *Auth, opts ...HandlerOption) *Handler {
	h := &Handler{store: store, auth: auth}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes registers every page and API endpoint of the blog.
func (h *Handler) Routes(r awesome.Router) {
	page := awesome.QueryParam("page", awesome.Optional("1"))

	r.Handle(awesome.GET("/", h.index, page))
	r.Handle(awesome.GET("/blog/{id}", h.blog, awesome.PathParam("id")))
	r.Handle(awesome.GET("/register", h.template("register.html")))
	r.Handle(awesome.GET("/signin", h.template("signin.html")))
	r.Handle(awesome.GET("/signout", h.signout, awesome.RequestArg("request")))

	r.Handle(awesome.GET("/manage/", h.manage))
	r.Handle(awesome.GET("/manage/comments", h.managePage("manage_comments.html"), page))
	r.Handle(awesome.GET("/manage/blogs", h.managePage("manage_blogs.html"), page))
	r.Handle(awesome.GET("/manage/users", h.managePage("manage_users.html"), page))
	r.Handle(awesome.GET("/manage/blogs/create", h.createBlogPage))
	r.Handle(awesome.GET("/manage/blogs/edit", h.editBlogPage, awesome.QueryParam("id")))

	r.Handle(awesome.POST("/api/authenticate", h.authenticate,
		awesome.BodyParam("email"), awesome.BodyParam("passwd"),
	), h.limiter...)
	r.Handle(awesome.GET("/api/users", h.listUsers, page))
	r.Handle(awesome.POST("/api/users", h.register,
		awesome.BodyParam("email"), awesome.BodyParam("name"), awesome.BodyParam("passwd"),
	))

	r.Handle(awesome.GET("/api/blogs", h.listBlogs, page))
	r.Handle(awesome.GET("/api/blogs/{id}", h.getBlog, awesome.PathParam("id")))
	r.Handle(awesome.POST("/api/blogs", h.createBlog,
		awesome.BodyParam("name"), awesome.BodyParam("summary"), awesome.BodyParam("content"),
	))
	r.Handle(awesome.POST("/api/blogs/{id}", h.updateBlog,
		awesome.PathParam("id"),
		awesome.BodyParam("name"), awesome.BodyParam("summary"), awesome.BodyParam("content"),
	))
	r.Handle(awesome.POST("/api/blogs/{id}/delete", h.deleteBlog, awesome.PathParam("id")))

	r.Handle(awesome.GET("/api/comments", h.listComments, page))
	r.Handle(awesome.POST("/api/blogs/{id}/comments", h.createComment,
		awesome.PathParam("id"), awesome.BodyParam("content"),
	))
	r.Handle(awesome.POST("/api/comments/{id}/delete", h.deleteComment, awesome.PathParam("id")))
}

func (h *Handler) index(c awesome.Context, args awesome.Args) (any, error) {
	blogs, p, err := page(c, h.store.Blogs, PageIndex(args.String("page")))
	if err != nil {
		return nil, err
	}
	return map[string]any{awesome.TemplateKey: "blogs.html", "page": p, "blogs": blogs}, nil
}

func (h *Handler) blog(c awesome.Context, args awesome.Args) (any, error) {
	b, err := h.store.Blogs.Find(c, args.String("id"))
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, awesome.ErrNotFound("Blog not found")
	}
	comments, err := h.store.BlogComments(c, b.ID)
	if err != nil {
		return nil, err
	}
	return map[string]any{awesome.TemplateKey: "blog.html", "blog": b, "comments": comments}, nil
}

func (h *Handler) template(name string) awesome.EndpointFunc {
	return func(awesome.Context, awesome.Args) (any, error) {
		return map[string]any{awesome.TemplateKey: name}, nil
	}
}

func (h *Handler) signout(c awesome.Context, args awesome.Args) (any, error) {
	h.auth.SignOut(c.Response())
	c.LogInfo("user signed out")

	referer := args.Request("request").Referer()
	if referer == "" {
		referer = "/"
	}
	return awesome.RedirectPrefix + referer, nil
}

func (h *Handler) manage(awesome.Context, awesome.Args) (any, error) {
	return awesome.RedirectPrefix + "/manage/comments", nil
}

func (h *Handler) managePage(name string) awesome.EndpointFunc {
	return func(_ awesome.Context, args awesome.Args) (any, error) {
		return map[string]any{
			awesome.TemplateKey: name,
			"page_index":        PageIndex(args.String("page")),
		}, nil
	}
}

func (h *Handler) createBlogPage(awesome.Context, awesome.Args) (any, error) {
	return map[string]any{
		awesome.TemplateKey: "manage_blog_edit.html",
		"id":                "",
		"action":            "/api/blogs",
	}, nil
}

func (h *Handler) editBlogPage(_ awesome.Context, args awesome.Args) (any, error) {
	id := args.String("id")
	return map[string]any{
		awesome.TemplateKey: "manage_blog_edit.html",
		"id":                id,
		"action":            "/api/blogs/" + id,
	}, nil
}

// currentUser returns the signed-in user, or nil.
func currentUser(c awesome.Context) *User {
	u, _ := c.Identity().(*User)
	return u
}

func checkAdmin(c awesome.Context) error {
	if id := c.Identity(); id == nil || !id.IsAdmin() {
		return awesome.APIPermissionError("Only administrators may do this.")
	}
	return nil
}
