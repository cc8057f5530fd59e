// Package apperrors holds the transport-level failures shared by the rate
// fetchers and the refresh orchestration. Domain rejections live in package domain.
package apperrors

import "errors"

var (
	// ErrExternalServiceFailure is returned when a rate source is unreachable,
	// answers with a non-success status or sends an unusable body.
	ErrExternalServiceFailure = errors.New("external service interaction failed")

	// ErrTimeout is returned when a fetch or a wait for a refresh outlives its deadline.
	ErrTimeout = errors.New("operation timed out")
)
