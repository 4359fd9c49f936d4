package blog

import (
	"context"

	"github.com/dmitrymomot/awesome/pkg/orm"
)

// Store groups the tables of the blog.
type Store struct {
	db       *orm.DB
	Users    *orm.Table[User, *User]
	Blogs    *orm.Table[Blog, *Blog]
	Comments *orm.Table[Comment, *Comment]
}

// NewStore binds the blog schemas to db.
func NewStore(db *orm.DB) *Store {
	return &Store{
		db:       db,
		Users:    orm.NewTable[User](db, userSchema),
		Blogs:    orm.NewTable[Blog](db, blogSchema),
		Comments: orm.NewTable[Comment](db, commentSchema),
	}
}

// UserByEmail returns the user registered with email, or nil.
func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	users, err := s.Users.FindAll(ctx, orm.Where("`email`=?", email), orm.Limit(1))
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return users[0], nil
}

// BlogComments returns the comments of a blog, newest first.
func (s *Store) BlogComments(ctx context.Context, blogID string) ([]*Comment, error) {
	return s.Comments.FindAll(ctx, orm.Where("`blog_id`=?", blogID), orm.OrderBy("`created_at` desc"))
}

// DeleteBlog removes a blog together with its comments.
func (s *Store) DeleteBlog(ctx context.Context, b *Blog) error {
	return s.db.Transaction(ctx, func(tx *orm.DB) error {
		if _, err := tx.Execute(ctx, "delete from `comments` where `blog_id`=?", []any{b.ID}, true); err != nil {
			return err
		}
		return s.Blogs.WithDB(tx).Remove(ctx, b)
	})
}

// count returns the number of rows matching opts.
func count[T any, PT interface {
	*T
	orm.Model
}](ctx context.Context, t *orm.Table[T, PT], opts ...orm.QueryOption) (int, error) {
	v, err := t.FindNumber(ctx, "count(`id`)", opts...)
	if err != nil {
		return 0, err
	}
	n, _ := orm.ToInt64(v)
	return int(n), nil
}

// page loads one page of a table ordered newest first.
func page[T any, PT interface {
	*T
	orm.Model
}](ctx context.Context, t *orm.Table[T, PT], index int) ([]*T, Page, error) {
	n, err := count(ctx, t)
	if err != nil {
		return nil, Page{}, err
	}
	p := NewPage(n, index, DefaultPageSize)
	if n == 0 || p.Limit == 0 {
		return []*T{}, p, nil
	}
	items, err := t.FindAll(ctx, orm.OrderBy("`created_at` desc"), orm.Limit([2]int{p.Offset, p.Limit}))
	if err != nil {
		return nil, Page{}, err
	}
	return items, p, nil
}
