package mmap

import "errors"

// AccessPattern is an advisory hint about how a mapping will be read.
type AccessPattern int

const (
	// AccessDefault leaves read-ahead to the kernel.
	AccessDefault AccessPattern = iota
	// AccessSequential favors aggressive read-ahead.
	AccessSequential
	// AccessRandom disables read-ahead. Column projection reads this way.
	AccessRandom
)

var (
	// ErrClosed is returned when attempting to access a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned when the file size is invalid (e.g. negative).
	ErrInvalidSize = errors.New("mmap: invalid file size")
)
