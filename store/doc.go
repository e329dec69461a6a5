// Package store provides the relational persistence layer for webdemo,
// built on GORM with SQLite, connection retry, and versioned SQL migrations.
package store
