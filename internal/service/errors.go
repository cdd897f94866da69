package service

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a login failure carries no user-enumeration signal.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotTaskOwner means the task exists but belongs to another user.
	// It is only produced after existence is confirmed, so a missing task
	// is reported as not found even to its would-be owner.
	ErrNotTaskOwner = errors.New("task does not belong to user")
)
