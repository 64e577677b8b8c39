package models

import "errors"

var (
	// ErrInvalidInput marks malformed or out-of-domain input fields
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownIndividual marks an id that does not resolve to a stored individual
	ErrUnknownIndividual = errors.New("unknown individual")
)
