package entrypoint

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/mrlokans/librarian/internal/logging"
	"github.com/mrlokans/librarian/internal/services"
)

const (
	MsgFatal    = "An error occurred. Please check error.log for details."
	MsgShutdown = "Shutting down the LMS gracefully."
)

// Errors returned by Guard. Both have already been reported to the user.
var (
	ErrShutdown = errors.New("lms shut down after a fatal error")
	ErrRejected = errors.New("operation rejected")
)

// Guard runs fn as the outermost boundary of a session. A rejection passes
// through as ErrRejected. Any other error, or a panic, is logged as an error,
// the user is told to check the error log, and ErrShutdown is returned.
func Guard(log logging.Logger, out io.Writer, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Unrecovered panic", "panic", r, "stack", string(debug.Stack()))
			err = shutdown(out)
		}
	}()

	if err := fn(); err != nil {
		if services.IsRejection(err) {
			return fmt.Errorf("%w: %v", ErrRejected, err)
		}
		log.Error("Fatal error", "error", err)
		return shutdown(out)
	}
	return nil
}

func shutdown(out io.Writer) error {
	fmt.Fprintln(out, MsgFatal)
	fmt.Fprintln(out, MsgShutdown)
	return ErrShutdown
}

// Reported tells whether err was already shown to the user by Guard.
func Reported(err error) bool {
	return errors.Is(err, ErrShutdown) || errors.Is(err, ErrRejected)
}

// ExitCode maps a command result to a process exit status: 0 on success,
// 2 when the operation was rejected, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrRejected):
		return 2
	default:
		return 1
	}
}
