package entity

import "errors"

// Domain errors
var (
	// Ingestion errors
	ErrBadInput       = errors.New("bad input")
	ErrInvalidChunker = errors.New("invalid chunker configuration")

	// File errors
	ErrInvalidFile       = errors.New("invalid file")
	ErrFileTooLarge      = errors.New("file too large")
	ErrTooManyFiles      = errors.New("too many files")
	ErrInvalidExtension  = errors.New("invalid file extension")
	ErrTotalSizeTooLarge = errors.New("total file size too large")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Validation errors
	ErrMissingField      = errors.New("required field is missing")
	ErrInvalidFormat     = errors.New("invalid format")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrUnsupportedFormat = errors.New("unsupported format")
)
