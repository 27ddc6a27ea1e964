package logtail

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks a transient open/stat/read failure during a poll. The
// cursor and history are left untouched and the next notification retries.
var ErrUnavailable = errors.New("log unavailable")

// WatchError reports that the filesystem refused a watch registration.
type WatchError struct {
	Path string
	Err  error
}

func (e *WatchError) Error() string {
	return fmt.Sprintf("watch %s: %v", e.Path, e.Err)
}

func (e *WatchError) Unwrap() error {
	return e.Err
}
