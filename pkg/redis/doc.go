// Package redis connects the application to the Redis server that backs the
// distributed lock manager.
//
// Connect retries until the server answers PING or the attempt budget runs
// out, so the service can start while Redis is still coming up:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Healthcheck returns a probe function for readiness endpoints.
//
// Config fields are populated from environment variables via
// github.com/caarlos0/env.
package redis
