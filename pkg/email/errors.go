package email

import "errors"

var (
	ErrFailedToSend  = errors.New("failed to send email")
	ErrInvalidConfig = errors.New("invalid email config")
	ErrInvalidParams = errors.New("invalid email params")
)
