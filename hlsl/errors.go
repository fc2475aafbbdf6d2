// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import "fmt"

// ErrorKind categorizes HLSL generation errors.
type ErrorKind uint8

const (
	// ErrInvalidGraph indicates the input graph or registry is malformed.
	ErrInvalidGraph ErrorKind = iota

	// ErrUnknownContract indicates a contract ID with no registry entry.
	ErrUnknownContract

	// ErrInternalError indicates an internal translator error.
	ErrInternalError
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidGraph:
		return "InvalidGraph"
	case ErrUnknownContract:
		return "UnknownContract"
	case ErrInternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// Error represents an HLSL generation error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("hlsl %s: %s", e.Kind, e.Message)
}

// NewError creates a new HLSL error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}
