package models

import "errors"

// Store errors. Services translate these into API errors.
var (
	ErrNotFound   = errors.New("document not found")
	ErrDuplicate  = errors.New("duplicate key")
	ErrStaleToken = errors.New("refresh token no longer current")
)
