// Package blog is the blog served by awesome: users, articles and comments
// stored through pkg/orm, HTML pages rendered from embedded templates and a
// JSON API under /api/.
//
// Wiring:
//
//	store := blog.NewStore(orm.New(pool.DB, orm.DialectFor(pool.Driver())))
//	auth := blog.NewAuth(store, cookie.New("awesession"), secret, cache.NewMemory[*blog.User]())
//	tpl, err := blog.NewTemplates()
//
//	app := awesome.New(
//	    awesome.WithMiddleware(
//	        middlewares.Logger(),
//	        middlewares.Auth(middlewares.AuthConfig{Resolver: auth}),
//	        middlewares.Data(),
//	        middlewares.Response(tpl),
//	    ),
//	    awesome.WithHandlers(blog.NewHandler(store, auth)),
//	    awesome.WithErrorHandler(blog.HandleError),
//	)
//
// Session cookies are signed with the secret together with the user's
// password hash, so a password change signs every session out.
package blog
