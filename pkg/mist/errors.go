package mist

import "errors"

var (
	// ErrMissingToken and ErrMissingSiteID are configuration errors:
	// the process must abort before any external call is made.
	ErrMissingToken  = errors.New("api token not configured")
	ErrMissingSiteID = errors.New("site id not configured")

	// ErrTransport covers network and HTTP-level failures talking to
	// the device cloud.
	ErrTransport = errors.New("device cloud request failed")

	// ErrUnexpectedStatus is a non-2xx response from the device cloud.
	ErrUnexpectedStatus = errors.New("device cloud returned unexpected status")

	// ErrAuthRejected means the cloud refused the configured token.
	ErrAuthRejected = errors.New("device cloud rejected credentials")
)
