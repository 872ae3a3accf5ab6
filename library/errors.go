package library

import "errors"

// Business-rule outcomes. These are expected results, not faults: callers
// test for them with errors.Is and report them alongside the success flag.
// Anything else coming out of an operation is a store-level failure.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrBookNotFound      = errors.New("book not found")
	ErrNoCopiesAvailable = errors.New("no copies available")
	ErrIssueNotFound     = errors.New("issue record not found")
	ErrAlreadyReturned   = errors.New("already returned")
)
