package domain

import "errors"

var (
	ErrPreferencesNotFound = errors.New("preference profile not found")
)
