package blog

import (
	"net/http"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/pkg/id"
	"github.com/dmitrymomot/awesome/pkg/orm"
)

// MaskedPassword replaces password hashes in every response.
const MaskedPassword = "******"

var userSchema = orm.MustSchema("User", []orm.Field{
	orm.StringField("id", orm.PrimaryKey(), orm.Default(id.NextID), orm.ColumnType("varchar(50)")),
	orm.StringField("email", orm.ColumnType("varchar(50)")),
	orm.StringField("passwd", orm.ColumnType("varchar(100)")),
	orm.BooleanField("admin"),
	orm.StringField("name", orm.ColumnType("varchar(50)")),
	orm.StringField("image", orm.ColumnType("varchar(500)")),
	orm.FloatField("created_at", orm.Default(orm.Now)),
}, orm.WithTable("users"))

var blogSchema = orm.MustSchema("Blog", []orm.Field{
	orm.StringField("id", orm.PrimaryKey(), orm.Default(id.NextID), orm.ColumnType("varchar(50)")),
	orm.StringField("user_id", orm.ColumnType("varchar(50)")),
	orm.StringField("user_name", orm.ColumnType("varchar(50)")),
	orm.StringField("user_image", orm.ColumnType("varchar(500)")),
	orm.StringField("name", orm.ColumnType("varchar(50)")),
	orm.StringField("summary", orm.ColumnType("varchar(200)")),
	orm.TextField("content"),
	orm.FloatField("created_at", orm.Default(orm.Now)),
}, orm.WithTable("blogs"))

var commentSchema = orm.MustSchema("Comment", []orm.Field{
	orm.StringField("id", orm.PrimaryKey(), orm.Default(id.NextID), orm.ColumnType("varchar(50)")),
	orm.StringField("blog_id", orm.ColumnType("varchar(50)")),
	orm.StringField("user_id", orm.ColumnType("varchar(50)")),
	orm.StringField("user_name", orm.ColumnType("varchar(50)")),
	orm.StringField("user_image", orm.ColumnType("varchar(500)")),
	orm.TextField("content"),
	orm.FloatField("created_at", orm.Default(orm.Now)),
}, orm.WithTable("comments"))

// User is a registered reader or, with Admin set, an author.
// It is also the Identity attached to signed-in requests.
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Passwd    string  `json:"passwd"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	CreatedAt float64 `json:"created_at"`
	Admin     bool    `json:"admin"`
}

func (u *User) UserID() string { return u.ID }
func (u *User) IsAdmin() bool  { return u.Admin }

// Masked returns a copy safe to hand to clients.
func (u *User) Masked() *User {
	c := *u
	c.Passwd = MaskedPassword
	return &c
}

// Respond writes the user as JSON with the password masked.
func (u *User) Respond(c awesome.Context) error {
	return c.JSON(http.StatusOK, u.Masked())
}

func (u *User) Values() orm.Row {
	r := orm.Row{
		"email":  u.Email,
		"passwd": u.Passwd,
		"admin":  u.Admin,
		"name":   u.Name,
		"image":  u.Image,
	}
	orm.PutNonZero(r, "id", u.ID)
	orm.PutNonZero(r, "created_at", u.CreatedAt)
	return r
}

func (u *User) Assign(r orm.Row) error {
	s := scanner{row: r}
	u.ID = s.string("id")
	u.Email = s.string("email")
	u.Passwd = s.string("passwd")
	u.Admin = s.bool("admin")
	u.Name = s.string("name")
	u.Image = s.string("image")
	u.CreatedAt = s.float("created_at")
	return s.err
}

// Blog is a published article. Author fields are copied from the user at
// creation time.
type Blog struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name"`
	UserImage string  `json:"user_image"`
	Name      string  `json:"name"`
	Summary   string  `json:"summary"`
	Content   string  `json:"content"`
	CreatedAt float64 `json:"created_at"`
}

func (b *Blog) Respond(c awesome.Context) error {
	return c.JSON(http.StatusOK, b)
}

func (b *Blog) Values() orm.Row {
	r := orm.Row{
		"user_id":    b.UserID,
		"user_name":  b.UserName,
		"user_image": b.UserImage,
		"name":       b.Name,
		"summary":    b.Summary,
		"content":    b.Content,
	}
	orm.PutNonZero(r, "id", b.ID)
	orm.PutNonZero(r, "created_at", b.CreatedAt)
	return r
}

func (b *Blog) Assign(r orm.Row) error {
	s := scanner{row: r}
	b.ID = s.string("id")
	b.UserID = s.string("user_id")
	b.UserName = s.string("user_name")
	b.UserImage = s.string("user_image")
	b.Name = s.string("name")
	b.Summary = s.string("summary")
	b.Content = s.string("content")
	b.CreatedAt = s.float("created_at")
	return s.err
}

// Comment belongs to a blog.
type Comment struct {
	ID        string  `json:"id"`
	BlogID    string  `json:"blog_id"`
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name"`
	UserImage string  `json:"user_image"`
	Content   string  `json:"content"`
	CreatedAt float64 `json:"created_at"`
}

func (c *Comment) Respond(ctx awesome.Context) error {
	return ctx.JSON(http.StatusOK, c)
}

func (c *Comment) Values() orm.Row {
	r := orm.Row{
		"blog_id":    c.BlogID,
		"user_id":    c.UserID,
		"user_name":  c.UserName,
		"user_image": c.UserImage,
		"content":    c.Content,
	}
	orm.PutNonZero(r, "id", c.ID)
	orm.PutNonZero(r, "created_at", c.CreatedAt)
	return r
}

func (c *Comment) Assign(r orm.Row) error {
	s := scanner{row: r}
	c.ID = s.string("id")
	c.BlogID = s.string("blog_id")
	c.UserID = s.string("user_id")
	c.UserName = s.string("user_name")
	c.UserImage = s.string("user_image")
	c.Content = s.string("content")
	c.CreatedAt = s.float("created_at")
	return s.err
}

// scanner reads typed values from a row and keeps the first error.
type scanner struct {
	row orm.Row
	err error
}

func (s *scanner) string(name string) string {
	v, err := s.row.String(name)
	s.keep(err)
	return v
}

func (s *scanner) float(name string) float64 {
	v, err := s.row.Float64(name)
	s.keep(err)
	return v
}

func (s *scanner) bool(name string) bool {
	v, err := s.row.Bool(name)
	s.keep(err)
	return v
}

func (s *scanner) keep(err error) {
	if s.err == nil {
		s.err = err
	}
}
