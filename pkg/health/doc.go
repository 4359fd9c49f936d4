// Package health provides HTTP handlers for liveness and readiness probes.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "db":    db.Healthcheck(pool),
//	    "redis": redis.Healthcheck(client),
//	}, health.WithTimeout(3*time.Second), health.WithLogger(log)))
//
// Checks run concurrently under one timeout. Responses are plain text
// ("OK" / "Service Unavailable") unless the client asks for JSON with
// Accept: application/json or ?format=json:
//
//	{"status":"unhealthy","checks":{"db":{"status":"healthy"},"redis":{"status":"unhealthy","error":"..."}}}
package health
