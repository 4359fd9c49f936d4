// Package awesome is a small web framework for the awesome blog.
//
// Requests pass through a middleware pipeline, reach an endpoint adapter
// that binds arguments from an explicit parameter schema and return plain
// values. The response stage turns those values into HTTP responses.
//
// # Quick Start
//
//	app := awesome.New(
//	    awesome.WithMiddleware(
//	        middlewares.Logger(),
//	        middlewares.Data(),
//	        middlewares.Response(templates),
//	    ),
//	    awesome.WithEndpoints(
//	        awesome.GET("/hello/{name}", hello, awesome.PathParam("name")),
//	    ),
//	)
//
//	if err := app.Run("127.0.0.1:9000"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// An endpoint declares where each argument comes from:
//
//	func hello(c awesome.Context, args awesome.Args) (any, error) {
//	    return "<h1>Hello, " + args.String("name") + "</h1>", nil
//	}
//
//	awesome.POST("/api/blogs", createBlog,
//	    awesome.BodyParam("name"),
//	    awesome.BodyParam("summary"),
//	    awesome.BodyParam("content", awesome.Optional("")),
//	)
//
// Missing required arguments produce 400 "Missing argument: <name>".
// Returning an [APIError] produces the JSON payload
// {"error": kind, "data": field, "message": msg}.
//
// # Results
//
// Endpoint results are coerced by type:
//
//   - []byte: application/octet-stream
//   - "redirect:/path": 302 to /path
//   - other strings: text/html
//   - map with "__template__": rendered template
//   - other string-keyed maps: JSON
//   - int in [100,600): bare status
//   - [2]any{status, message}: text/plain with status
//   - nil: 204 No Content
//   - anything else: fmt.Sprint as text/plain
//
// # Handlers
//
// Types implementing [Handler] register their endpoints on a [Router]:
//
//	func (h *Handler) Routes(r awesome.Router) {
//	    r.Handle(awesome.GET("/", h.index, awesome.QueryParam("page", awesome.Optional("1"))))
//	}
//
// # Shutdown
//
// The application handles SIGINT/SIGTERM for graceful shutdown.
// Register cleanup functions with ShutdownHook:
//
//	app.Run(addr,
//	    awesome.ShutdownHook(db.Shutdown(pool)),
//	)
package awesome
