package domain

import "errors"

var (
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrDuplicateProposal = errors.New("proposal already submitted for this lead")
	ErrLeadNotAvailable  = errors.New("lead is not available for proposals")
	ErrInvalidState      = errors.New("proposal is not pending")
	ErrNotAuthorized     = errors.New("caller is not authorized for this proposal")
)
