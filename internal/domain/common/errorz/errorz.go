package errorz

import "errors"

var (
	InvalidFilter  = errors.New("invalid filter expression")
	InvalidPayload = errors.New("invalid change payload")
	Forbidden      = errors.New("forbidden")
)
