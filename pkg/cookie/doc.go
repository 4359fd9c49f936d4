// Package cookie manages a single named HTTP cookie with consistent
// attributes.
//
//	session := cookie.New("awesession",
//	    cookie.WithMaxAge(24*time.Hour),
//	    cookie.WithSecure(true),
//	)
//	session.Set(w, value)
//	v, err := session.Get(r) // cookie.ErrNotFound when absent
//	session.Delete(w)
//
// The manager does not sign values itself; the session value produced by
// the blog carries its own SHA-256 digest.
package cookie
