package errors

import (
	"fmt"
)

var (
	ErrNotFound        = fmt.Errorf("not found")
	ErrDuplicateSlug   = fmt.Errorf("duplicate slug")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrUnauthenticated = fmt.Errorf("unauthenticated")
	ErrForbidden       = fmt.Errorf("forbidden")
	ErrStorage         = fmt.Errorf("storage failure")
)
