package repository

import "errors"

var (
	ErrNilAttachment = errors.New("attachment is nil")
	ErrNilStatus     = errors.New("status is nil")
	ErrMissingID     = errors.New("status id is empty")
)
