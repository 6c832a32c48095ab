package console

import (
	"errors"
	"fmt"

	"github.com/bobprince4u/admin/internal/app/system/apiclient"
)

var (
	// ErrUnauthenticated is returned by any operation on a controller whose
	// session has ended.
	ErrUnauthenticated = errors.New("console: session has ended")
	// ErrNotReady is returned by mutations attempted before the initial load.
	ErrNotReady = errors.New("console: collections not loaded")
	// ErrInvalidStatus rejects a contact status outside the five known values.
	ErrInvalidStatus = errors.New("console: invalid contact status")
	// ErrContactNotFound is returned when a status change names a contact the
	// controller does not hold and the backend did not return one.
	ErrContactNotFound = errors.New("console: contact not found")
)

// FetchError reports which collection failed during the initial load.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Notice is the message shown to the admin after a failed load.
func (e *FetchError) Notice() string {
	if errors.Is(e.Err, apiclient.ErrSessionExpired) {
		return "Your session has expired. Please log in again."
	}
	return "Failed to load dashboard data. Please log in again."
}

// MutationError reports a failed create, update, delete or status change.
// The controller's state is untouched when one is returned.
type MutationError struct {
	Op       string
	Resource string
	Err      error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

// Notice is the message shown to the admin: the backend's own message when
// it sent one, otherwise a generic line naming the operation.
func (e *MutationError) Notice() string {
	return apiclient.MessageOf(e.Err, fmt.Sprintf("Failed to %s %s", e.Op, e.Resource))
}

// SessionExpired reports whether err ends the session.
func SessionExpired(err error) bool {
	return errors.Is(err, apiclient.ErrSessionExpired) || errors.Is(err, ErrUnauthenticated)
}
