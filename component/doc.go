// Package component defines the lifecycle contract shared by the service's
// long-lived parts (database, redis, rate limiter, HTTP server) and a
// Registry that starts them in order, stops them in reverse and aggregates
// their health for the /health endpoint.
package component
