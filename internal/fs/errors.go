package fs

import (
	"errors"
	"syscall"
)

// transientErrnos may clear up on their own, e.g. on a busy network share.
var transientErrnos = []error{
	syscall.EAGAIN,
	syscall.EBUSY,
	syscall.EINTR,
	syscall.ETIMEDOUT,
}

// isTransient reports whether an operation that failed with err is worth
// retrying.
func isTransient(err error) bool {
	for _, errno := range transientErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}
