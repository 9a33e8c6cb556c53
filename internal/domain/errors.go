package domain

import "errors"

var (
	ErrInvalidActor     = errors.New("invalid actor")
	ErrActorNotFound    = errors.New("actor not found")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidState     = errors.New("invalid state")
	ErrLimitExceeded    = errors.New("limit exceeded")
	ErrConcurrentUpdate = errors.New("concurrent update")
	ErrLocked           = errors.New("resource is locked")
	ErrWalletCredit     = errors.New("wallet credit failed")
)
