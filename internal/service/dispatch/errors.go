package dispatch

import "errors"

// Sentinel errors for dispatch requests.
var (
	// ErrNoRecipients means the campaign resolved to zero deliverable
	// recipients. The campaign status is left untouched.
	ErrNoRecipients = errors.New("campaign has no recipients")

	// ErrAlreadySent means the campaign reached its terminal status and can
	// never be dispatched again.
	ErrAlreadySent = errors.New("campaign already sent")

	// ErrDispatchInProgress means another dispatch currently holds the
	// campaign's lock.
	ErrDispatchInProgress = errors.New("campaign dispatch already in progress")
)
