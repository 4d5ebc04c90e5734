package userrepo

import "errors"

var (
	ErrNotFound = errors.New("user not found")
	ErrConflict = errors.New("user write conflict")
)
