// Package common defines sentinel errors shared by the repositories, services
// and the CLI. Callers should match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrStatementFailed    = errors.New("statement failed")
	ErrRowMaterialization = errors.New("row materialization failed")

	// Connection errors.
	ErrConnectFailed = errors.New("connect failed")

	// Validation errors raised before anything reaches the store.
	ErrValidation = errors.New("validation error")

	// Service-level errors.
	ErrInvalidCredentials = errors.New("invalid username/password")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmptyCart          = errors.New("cart is empty")
)
