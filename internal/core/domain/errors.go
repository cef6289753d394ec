package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidRequirement is returned when a package requirement string cannot be parsed.
	ErrInvalidRequirement = zerr.New("invalid package requirement")

	// ErrNoPackagesConfigured is returned when the configured install set is empty.
	ErrNoPackagesConfigured = zerr.New("no packages configured")

	// ErrInterpreterNotFound is returned when the configured Python interpreter cannot be located.
	ErrInterpreterNotFound = zerr.New("python interpreter not found")

	// ErrPipCommandFailed is returned when a pip invocation exits non-zero.
	ErrPipCommandFailed = zerr.New("pip command failed")

	// ErrSetupIncomplete is returned by the runner when one or more steps failed.
	// Remaining steps still run to completion before this is reported.
	ErrSetupIncomplete = zerr.New("setup finished with failed steps")
)
