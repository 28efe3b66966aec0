package service

import "errors"

var (
	ErrInvalidCredentials      = errors.New("incorrect username or password")
	ErrWrongOldPassword        = errors.New("wrong password")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
)
