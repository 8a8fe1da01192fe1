// Package service implements the payments use cases on top of the store
// interfaces.
//
// Inputs are validated through the domain package before any persistence
// call. Read-check-write sequences run in one transaction via
// store.RunInTransaction, and store errors are translated into the
// sentinels declared in errors.go (ErrNotFound, ErrConflict,
// ErrInvalidState) wrapped in a *ServiceError carrying a client-safe message.
package service
