// Package database provides a GORM-based database component with
// connection retry, pooling, a zerolog-backed GORM logger and
// auto-migration.
//
// The driver is chosen by Config.Driver; sqlite is the only one built in.
//
//	database:
//	  enabled: true
//	  driver: "sqlite"
//	  dsn: "webtoon.db"
//	  auto_migrate: true
package database
