package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/prix-six/internal/domain/reconciliation"
)

type AuditRepository struct {
	mu      sync.RWMutex
	reports []reconciliation.Report
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) SaveReport(_ context.Context, report reconciliation.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	report.Mismatches = append([]reconciliation.Mismatch(nil), report.Mismatches...)
	r.reports = append(r.reports, report)
	return nil
}

func (r *AuditRepository) LatestReport(_ context.Context) (reconciliation.Report, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.reports) == 0 {
		return reconciliation.Report{}, false, nil
	}
	latest := r.reports[len(r.reports)-1]
	latest.Mismatches = append([]reconciliation.Mismatch(nil), latest.Mismatches...)
	return latest, true, nil
}

// Reports returns every saved report in write order.
func (r *AuditRepository) Reports() []reconciliation.Report {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]reconciliation.Report(nil), r.reports...)
}
