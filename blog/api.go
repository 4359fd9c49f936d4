package blog

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/pkg/sanitizer"
)

var (
	emailRe = regexp.MustCompile(`^[a-z0-9.\-_]+@[a-z0-9\-_]+(\.[a-z0-9\-_]+){1,4}$`)
	sha1Re  = regexp.MustCompile(`^[0-9a-f]{40}$`)
)

func (h *Handler) authenticate(c awesome.Context, args awesome.Args) (any, error) {
	u, err := h.auth.Authenticate(c, strings.ToLower(strings.TrimSpace(args.String("email"))), args.String("passwd"))
	if err != nil {
		return nil, err
	}
	h.auth.SignIn(c.Response(), u)
	c.LogInfo("user signed in", "user_id", u.ID)
	return u, nil
}

func (h *Handler) register(c awesome.Context, args awesome.Args) (any, error) {
	name := strings.TrimSpace(sanitizer.Text(args.String("name")))
	email := strings.ToLower(strings.TrimSpace(args.String("email")))
	passwd := args.String("passwd")

	if name == "" {
		return nil, awesome.APIValueError("name", "Invalid name.")
	}
	if !emailRe.MatchString(email) {
		return nil, awesome.APIValueError("email", "Invalid email.")
	}
	if !sha1Re.MatchString(passwd) {
		return nil, awesome.APIValueError("passwd", "Invalid password.")
	}

	existing, err := h.store.UserByEmail(c, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, awesome.NewAPIError("register:failed", "email", "Email is already in use.")
	}

	hash, err := h.auth.HashPassword(passwd)
	if err != nil {
		return nil, err
	}
	u := &User{Name: name, Email: email, Passwd: hash, Image: Gravatar(email)}
	if err := h.store.Users.Save(c, u); err != nil {
		return nil, err
	}
	h.auth.SignIn(c.Response(), u)
	c.LogInfo("user registered", "user_id", u.ID)
	return u, nil
}

func (h *Handler) listUsers(c awesome.Context, args awesome.Args) (any, error) {
	users, p, err := page(c, h.store.Users, PageIndex(args.String("page")))
	if err != nil {
		return nil, err
	}
	masked := make([]*User, len(users))
	for i, u := range users {
		masked[i] = u.Masked()
	}
	return map[string]any{"page": p, "users": masked}, nil
}

func (h *Handler) listBlogs(c awesome.Context, args awesome.Args) (any, error) {
	blogs, p, err := page(c, h.store.Blogs, PageIndex(args.String("page")))
	if err != nil {
		return nil, err
	}
	return map[string]any{"page": p, "blogs": blogs}, nil
}

func (h *Handler) getBlog(c awesome.Context, args awesome.Args) (any, error) {
	return h.findBlog(c, args.String("id"))
}

func (h *Handler) createBlog(c awesome.Context, args awesome.Args) (any, error) {
	if err := checkAdmin(c); err != nil {
		return nil, err
	}
	fields, err := blogFields(args)
	if err != nil {
		return nil, err
	}
	u := currentUser(c)
	b := &Blog{
		UserID:  c.UserID(),
		Name:    fields[0],
		Summary: fields[1],
		Content: fields[2],
	}
	if u != nil {
		b.UserName, b.UserImage = u.Name, u.Image
	}
	if err := h.store.Blogs.Save(c, b); err != nil {
		return nil, err
	}
	c.LogInfo("blog created", "blog_id", b.ID)
	return b, nil
}

func (h *Handler) updateBlog(c awesome.Context, args awesome.Args) (any, error) {
	if err := checkAdmin(c); err != nil {
		return nil, err
	}
	b, err := h.findBlog(c, args.String("id"))
	if err != nil {
		return nil, err
	}
	fields, err := blogFields(args)
	if err != nil {
		return nil, err
	}
	b.Name, b.Summary, b.Content = fields[0], fields[1], fields[2]
	if err := h.store.Blogs.Update(c, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (h *Handler) deleteBlog(c awesome.Context, args awesome.Args) (any, error) {
	if err := checkAdmin(c); err != nil {
		return nil, err
	}
	b, err := h.findBlog(c, args.String("id"))
	if err != nil {
		return nil, err
	}
	if err := h.store.DeleteBlog(c, b); err != nil {
		return nil, err
	}
	c.LogInfo("blog deleted", "blog_id", b.ID)
	return map[string]any{"id": b.ID}, nil
}

func (h *Handler) listComments(c awesome.Context, args awesome.Args) (any, error) {
	comments, p, err := page(c, h.store.Comments, PageIndex(args.String("page")))
	if err != nil {
		return nil, err
	}
	return map[string]any{"page": p, "comments": comments}, nil
}

func (h *Handler) createComment(c awesome.Context, args awesome.Args) (any, error) {
	u := currentUser(c)
	if u == nil {
		return nil, awesome.APIPermissionError("Please signin first.")
	}
	content := strings.TrimSpace(args.String("content"))
	if content == "" {
		return nil, awesome.APIValueError("content", "content cannot be empty.")
	}
	b, err := h.findBlog(c, args.String("id"))
	if err != nil {
		return nil, err
	}
	comment := &Comment{
		BlogID:    b.ID,
		UserID:    u.ID,
		UserName:  u.Name,
		UserImage: u.Image,
		Content:   content,
	}
	if err := h.store.Comments.Save(c, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (h *Handler) deleteComment(c awesome.Context, args awesome.Args) (any, error) {
	if err := checkAdmin(c); err != nil {
		return nil, err
	}
	comment, err := h.store.Comments.Find(c, args.String("id"))
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, awesome.APIResourceNotFoundError("Comment", "Comment not found.")
	}
	if err := h.store.Comments.Remove(c, comment); err != nil {
		return nil, err
	}
	return map[string]any{"id": comment.ID}, nil
}

func (h *Handler) findBlog(c awesome.Context, id string) (*Blog, error) {
	b, err := h.store.Blogs.Find(c, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, awesome.APIResourceNotFoundError("Blog", "Blog not found.")
	}
	return b, nil
}

// blogFields returns the trimmed name, summary and content, rejecting blanks.
func blogFields(args awesome.Args) ([3]string, error) {
	var out [3]string
	for i, name := range []string{"name", "summary", "content"} {
		out[i] = strings.TrimSpace(args.String(name))
		if out[i] == "" {
			return out, awesome.APIValueError(name, name+" cannot be empty.")
		}
	}
	return out, nil
}
