package domain

import "errors"

var (
	ErrLeadNotFound = errors.New("lead not found")
	ErrLeadNotOpen  = errors.New("lead is not open")
	ErrNotLeadOwner = errors.New("caller does not own this lead")
)
