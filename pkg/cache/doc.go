// Package cache provides a generic Cache with in-memory and Redis backends.
//
// The blog uses it to keep resolved session identities so that a signed
// cookie does not cost a database query on every request:
//
//	var users cache.Cache[*blog.User] = cache.NewMemory[*blog.User](
//	    cache.WithDefaultTTL(5 * time.Minute),
//	    cache.WithMaxEntries(10000),
//	)
//
// or, when Redis is configured:
//
//	users = cache.NewRedis[*blog.User](client, nil, cache.WithPrefix("awesome:users"))
//
// [GetOrSet] loads a value on a miss; concurrent misses for one key share
// a single load.
package cache
