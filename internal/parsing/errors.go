package parsing

import "fmt"

// UnsupportedFormatError indicates a file extension with no decoder
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("Unsupported file format: %s", e.Extension)
}

// DecodeError represents a failure converting an uploaded file to text
type DecodeError struct {
	Format string
	Cause  error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to decode %s file: %v", e.Format, e.Cause)
	}
	return fmt.Sprintf("failed to decode %s file", e.Format)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
