// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager

package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error taxonomy surfaced to the transport layer. Everything here is a
// client-visible failure; only transient storage errors are retried.
var (
	// ErrNotFound means a referenced entity id or serial does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness constraint (name, serial number) or
	// an already-held assignment was violated.
	ErrConflict = errors.New("conflict")

	// ErrCapacityExceeded means the target splitter has no free ports.
	ErrCapacityExceeded = errors.New("splitter capacity exceeded")

	// ErrPortConflict means the requested port is already occupied.
	ErrPortConflict = errors.New("port already occupied")

	// ErrNotAssigned means an asset has no assignment to resolve through.
	ErrNotAssigned = errors.New("asset is not assigned to a customer")
)

// BusinessRuleError is a hard precondition failure, surfaced with an
// explanatory message and never auto-resolved or retried.
type BusinessRuleError struct {
	Rule string
}

func (e *BusinessRuleError) Error() string {
	return e.Rule
}

func businessRule(format string, args ...interface{}) error {
	return &BusinessRuleError{Rule: fmt.Sprintf(format, args...)}
}

// IsBusinessRule reports whether err is a business-rule violation.
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

const (
	txRetryAttempts = 3
	txRetryDelay    = 50 * time.Millisecond
)

// withRetry re-runs fn on transient sqlite contention ("database is
// locked" / "database table is locked"). All other errors pass through
// untouched.
func withRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < txRetryAttempts; attempt++ {
		err = fn()
		if err == nil || !isTransient(err) {
			return err
		}
		time.Sleep(txRetryDelay * time.Duration(attempt+1))
	}
	return err
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
