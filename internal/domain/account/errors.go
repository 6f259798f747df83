package account

import "errors"

var (
	ErrNotFound        = errors.New("account not found")
	ErrVersionConflict = errors.New("account modified by a concurrent writer")
)
