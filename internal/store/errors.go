package store

import "errors"

var (
	ErrNotFound = errors.New("store: not found")
	ErrEmpty    = errors.New("store: catalog tables are empty")
)
