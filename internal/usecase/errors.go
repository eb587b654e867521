package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrReportNotPersisted accompanies a complete reconciliation report whose
	// audit write failed. Callers may still use the report.
	ErrReportNotPersisted = errors.New("reconciliation report not persisted")
)
