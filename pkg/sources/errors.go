package sources

import "fmt"

// FetchError wraps a failed series, episode or image fetch together
// with the identifier it concerned, so callers can report it and move
// on to the next unit of work.
type FetchError struct {
	ID  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.ID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
