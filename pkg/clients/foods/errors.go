package foods

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by NotFoundError so callers can match with errors.Is.
var ErrNotFound = errors.New("food not found")

// ErrMissingID indicates the backend answered a create without assigning an id.
var ErrMissingID = errors.New("response carries no food id")

// NetworkError reports a transport failure or a non-2xx answer from the foods API.
type NetworkError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("foods api %s: status=%d, message=%s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("foods api %s: status=%d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("foods api %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("foods api %s failed", e.Op)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NotFoundError is returned by Update and Delete when the backend no longer
// knows the id. It is a NetworkError variant carrying the 404.
type NotFoundError struct {
	Op string
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("foods api %s: food %d not found", e.Op, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// IsNotFound reports whether err carries a NotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
