// Package exitcode defines process exit codes.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates bad arguments, a bad link or a bad config.
	UserError = 1

	// BackendError indicates the webhook was unreachable or rejected the list.
	BackendError = 3
)
