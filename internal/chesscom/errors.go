package chesscom

import "errors"

var (
	// ErrUserNotFound means the upstream API signaled the player does not
	// exist. Never retried.
	ErrUserNotFound = errors.New("chesscom: user not found")

	// ErrFetchFailed means the upstream API answered with a permanent
	// redirect or policy condition. Never retried.
	ErrFetchFailed = errors.New("chesscom: permanent fetch failure")

	// ErrMaxRetriesExceeded means every attempt of the bounded retry budget
	// failed with a transient error.
	ErrMaxRetriesExceeded = errors.New("chesscom: max retries exceeded")
)
