package user

import "errors"

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid login or password format")
	ErrInvalidAuth  = errors.New("invalid credentials")
	ErrLoginTaken   = errors.New("login already registered")
)
