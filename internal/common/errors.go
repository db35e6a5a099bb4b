// Package common defines shared sentinel errors used across the annotation
// store. Callers should use errors.Is to match these values; flattening to a
// display string happens only at the CLI boundary.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Package codec errors.
	ErrUnsupportedVersion = errors.New("unsupported package version")
	ErrMalformedPackage   = errors.New("malformed annotation package")

	// Sidecar migration errors.
	ErrMalformedSidecar = errors.New("malformed sidecar file")

	// Generic internal flow control.
	ErrInternal = errors.New("internal error")
)
