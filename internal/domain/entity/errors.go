package entity

import "errors"

var (
	// ErrNoGuest is reported when a command needs a guest and none exists.
	ErrNoGuest = errors.New("no guest attached")
	// ErrBridgeHandleUnknown is reported when attachment is attempted before
	// the native surface handle is known.
	ErrBridgeHandleUnknown = errors.New("bridge handle not yet known")
	// ErrInvalidFindAction is reported for stop-finding actions outside clear|keep|activate.
	ErrInvalidFindAction = errors.New("invalid stop-finding action")
	// ErrGuestCreateFailed wraps native guest creation failures.
	ErrGuestCreateFailed = errors.New("guest creation failed")
	// ErrUnknownEvent is returned when decoding an event type with no schema.
	ErrUnknownEvent = errors.New("unknown guest event type")
	// ErrExpectationFailed is returned when a replayed scenario diverges
	// from one of its expectations.
	ErrExpectationFailed = errors.New("scenario expectation failed")
	// ErrUnknownCommand is returned for scenario calls outside the command API.
	ErrUnknownCommand = errors.New("unknown command")
)
