package reconciliation

import "context"

// AuditRepository is the sink reconciliation reports are written to.
type AuditRepository interface {
	SaveReport(ctx context.Context, report Report) error
	// LatestReport returns false when no report was saved yet.
	LatestReport(ctx context.Context) (Report, bool, error)
}
