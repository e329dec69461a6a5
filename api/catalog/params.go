package catalog

import (
	"strconv"

	apperrors "github.com/kbukum/webdemo/errors"
)

// parseID converts a numeric path parameter into a primary key.
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("id must be a positive integer")
	}
	return uint(id), nil
}

// validationError wraps a JSON binding failure in the standard error body.
func validationError(err error) error {
	return apperrors.Validation("invalid request body").WithCause(err)
}
