// Package redis provides a go-redis client wrapper with the service's
// logging and configuration conventions, a lifecycle Component, and a
// generic JSON TypedStore used by the redis-backed identity store.
//
//	redis:
//	  enabled: true
//	  addr: "localhost:6379"
//	  db: 0
package redis
