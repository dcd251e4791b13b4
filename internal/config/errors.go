package config

import "errors"

var (
	ErrInvalidColor  = errors.New("config: invalid color")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
