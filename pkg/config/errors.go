package config

import "errors"

var (
	ErrParseDefaults = errors.New("config: failed to parse defaults")
	ErrReadOverride  = errors.New("config: failed to read override file")
	ErrParseOverride = errors.New("config: failed to parse override file")
	ErrParseEnv      = errors.New("config: failed to parse environment")
)
