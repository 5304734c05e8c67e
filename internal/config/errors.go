package config

import "errors"

var (
	ErrConfigNotFound      = errors.New("configuration file not found")
	ErrInvalidPort         = errors.New("invalid port: must not be empty")
	ErrInvalidRate         = errors.New("invalid rate limit: must be positive")
	ErrInvalidTimeout      = errors.New("invalid fetch timeout: must be positive")
	ErrInvalidMaxPageBytes = errors.New("invalid max page bytes: must be positive")
	ErrInvalidBatchLimit   = errors.New("invalid batch limit: must be positive")
	ErrInvalidRetention    = errors.New("invalid retention: must be a positive number of days")
	ErrInvalidLogLevel     = errors.New("invalid log level: use debug, info, warn or error")
)
