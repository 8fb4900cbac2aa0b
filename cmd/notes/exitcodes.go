package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/notes"
)

// Exit codes
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Configuration error (bad .notes.yaml, .env or flags)
	ExitDuplicate    = 3 // add: title already taken
	ExitNotFound     = 4 // remove/read: no note with that title
	ExitStorageError = 5 // store unreadable in strict mode, unwritable, or locked
)

// exitError carries an exit code. A nil err means the message was already
// printed by the command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// report signals a handled condition: msg goes to stderr and the command
// exits with code.
func report(w io.Writer, code int, msg string) error {
	fmt.Fprintln(w, msg)
	return &exitError{code: code}
}

func configError(err error) error {
	return &exitError{code: ExitConfigError, err: fmt.Errorf("config: %w", err)}
}

// exitCode maps the error returned by the command tree to an exit code,
// printing it unless the command already did.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return ExitSuccess
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "error: %v\n", ee.err)
		}
		return ee.code
	}

	fmt.Fprintf(stderr, "error: %v\n", err)
	switch {
	case errors.Is(err, notes.ErrDuplicateTitle):
		return ExitDuplicate
	case errors.Is(err, notes.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, notes.ErrStorageCorrupt),
		errors.Is(err, notes.ErrStorageUnreadable),
		errors.Is(err, notes.ErrStorageUnwritable),
		errors.Is(err, notes.ErrLockTimeout):
		return ExitStorageError
	default:
		return ExitError
	}
}
