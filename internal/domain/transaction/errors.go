package transaction

import "errors"

var (
	ErrNotFound       = errors.New("loan transaction not found")
	ErrAlreadySettled = errors.New("loan already settled")
)
