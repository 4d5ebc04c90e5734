package loginrepo

import "errors"

var (
	ErrNotFound = errors.New("login not found")
	ErrConflict = errors.New("login write conflict")
)
