package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prix-six/internal/domain/reconciliation"
	qb "github.com/riskibarqy/prix-six/internal/platform/querybuilder"
)

// AuditRepository stores each report as one JSONB document.
type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) SaveReport(ctx context.Context, report reconciliation.Report) error {
	row, err := newAuditLogTableModel(report)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModels("audit_logs", []auditLogTableModel{row}, "")
	if err != nil {
		return fmt.Errorf("build insert audit log query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert audit log %s: %w", report.ID, err)
	}
	return nil
}

func (r *AuditRepository) LatestReport(ctx context.Context) (reconciliation.Report, bool, error) {
	query, args, err := qb.Select("*").
		From("audit_logs").
		Where(qb.Eq("type", reconciliation.ReportTypeFullCrossCheck)).
		OrderBy("created_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return reconciliation.Report{}, false, fmt.Errorf("build latest audit log query: %w", err)
	}

	var row auditLogTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return reconciliation.Report{}, false, nil
		}
		return reconciliation.Report{}, false, fmt.Errorf("get latest audit log: %w", err)
	}

	report, err := row.toDomain()
	if err != nil {
		return reconciliation.Report{}, false, err
	}
	return report, true, nil
}

func newAuditLogTableModel(report reconciliation.Report) (auditLogTableModel, error) {
	payload, err := sonic.Marshal(report)
	if err != nil {
		return auditLogTableModel{}, fmt.Errorf("encode audit report %s: %w", report.ID, err)
	}
	return auditLogTableModel{
		ID:        report.ID,
		Type:      report.Type,
		Payload:   payload,
		CreatedAt: report.CreatedAt,
	}, nil
}

func (m auditLogTableModel) toDomain() (reconciliation.Report, error) {
	var report reconciliation.Report
	if err := sonic.Unmarshal(m.Payload, &report); err != nil {
		return reconciliation.Report{}, fmt.Errorf("decode audit report %s: %w", m.ID, err)
	}
	return report, nil
}
