package models

import "errors"

var ErrNotFound = errors.New("not found")

var (
	ErrInvalidJSON = errors.New("invalid json")
	ErrInvalidCard = errors.New("invalid card")
)
