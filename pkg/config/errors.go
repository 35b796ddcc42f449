package config

import "errors"

var (
	// ErrBaseURLRequired is returned when api.base_url is not provided
	ErrBaseURLRequired = errors.New("api base_url is required")

	// ErrInvalidBaseURL is returned when api.base_url is not an http(s) URL
	ErrInvalidBaseURL = errors.New("api base_url must be an absolute http or https URL")

	// ErrInvalidTimeout is returned when api.timeout is not a positive duration
	ErrInvalidTimeout = errors.New("api timeout must be a positive duration (e.g. \"10s\")")

	// ErrInvalidRoute is returned when a redirect route is not an absolute path
	ErrInvalidRoute = errors.New("routes must start with \"/\"")

	// ErrUnsupportedStorage is returned for an unknown storage type
	ErrUnsupportedStorage = errors.New("unsupported storage type (allowed: leveldb, memory, redis)")

	// ErrRedisAddrRequired is returned when redis storage has no address
	ErrRedisAddrRequired = errors.New("storage redis addr is required when type is redis")

	// ErrInvalidLogLevel is returned for an unknown logging level
	ErrInvalidLogLevel = errors.New("invalid logging level (allowed: debug, info, warn, error)")

	// ErrConfigFileNotFound is returned when config file is not found
	ErrConfigFileNotFound = errors.New("configuration file not found")
)
