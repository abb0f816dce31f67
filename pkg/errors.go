package problems

// NotFoundError means the problems file is missing or unreadable.
type NotFoundError struct {
	error
}

// ParseError means the problems file content is not an array of objects.
type ParseError struct {
	error
}

// WriteError means the problems file could not be (fully) written.
type WriteError struct {
	error
}

func NewNotFoundError(err error) error {
	return NotFoundError{err}
}

func NewParseError(err error) error {
	return ParseError{err}
}

func NewWriteError(err error) error {
	return WriteError{err}
}
