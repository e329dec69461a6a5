// Package logger provides structured logging for webdemo built on zerolog.
//
// A single Logger is constructed at startup from config and passed to each
// component; WithComponent tags all events from that component. Package-level
// helpers delegate to a process-wide default for code without an injected
// logger (middleware, panics).
package logger
