// Package validation provides input validation for webdemo handlers.
//
// Struct validation uses go-playground/validator tags; the fluent Validator
// covers ad-hoc checks on individual fields. Both produce the standard
// VALIDATION_ERROR AppError with per-field details.
package validation
