package models

import "errors"

var (
	ErrEmptyData          = errors.New("empty data")
	ErrDimMismatch        = errors.New("dimension mismatch")
	ErrInvalidLabel       = errors.New("labels must be 0 or 1")
	ErrInvalidMaxFeatures = errors.New("invalid max features policy")
)
