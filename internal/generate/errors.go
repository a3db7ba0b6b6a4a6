package generate

import "errors"

var (
	// ErrEmptyGeneration means the model call succeeded but returned blank
	// text. Treated as an unserviceable request, not a server fault.
	ErrEmptyGeneration = errors.New("empty generation response")

	// ErrMalformedOutput means the model returned text but no parseable JSON
	// was found, or the parsed JSON did not match the expected shape.
	ErrMalformedOutput = errors.New("malformed generation output")
)
