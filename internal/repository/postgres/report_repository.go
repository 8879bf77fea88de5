package postgres

import (
	"context"
	"database/sql"

	"github.com/LiveKiller/placement-website/internal/common"
	"github.com/LiveKiller/placement-website/internal/domain/application"
	"github.com/LiveKiller/placement-website/internal/domain/report"
)

type ReportRepository struct {
	store
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{store{db: db}}
}

func (r *ReportRepository) Stats(ctx context.Context) (*report.Stats, error) {
	var stats report.Stats
	err := r.getRow(ctx, func(row *sql.Row) error {
		return row.Scan(
			&stats.Users.Students,
			&stats.Users.Faculty,
			&stats.Users.HiringManagers,
			&stats.Internships.Active,
			&stats.Internships.Total,
			&stats.Applications.Pending,
			&stats.Applications.Approved,
			&stats.Applications.Rejected,
		)
	}, `SELECT
		(SELECT COUNT(*) FROM student_profiles),
		(SELECT COUNT(*) FROM faculty_profiles),
		(SELECT COUNT(*) FROM hiring_profiles),
		(SELECT COUNT(*) FROM internships WHERE is_active = TRUE),
		(SELECT COUNT(*) FROM internships),
		(SELECT COUNT(*) FROM applications WHERE status = $1),
		(SELECT COUNT(*) FROM applications WHERE status = $2),
		(SELECT COUNT(*) FROM applications WHERE status = $3)`,
		application.StatusPending, application.StatusApproved, application.StatusRejected)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to load stats", err)
	}
	stats.Users.Total = stats.Users.Students + stats.Users.Faculty + stats.Users.HiringManagers
	stats.Applications.Total = stats.Applications.Pending + stats.Applications.Approved + stats.Applications.Rejected
	return &stats, nil
}

func (r *ReportRepository) ApplicationsByDepartment(ctx context.Context) (map[string]int, error) {
	rows, err := r.query(ctx, `SELECT s.department, COUNT(*)
		FROM applications a
		JOIN student_profiles s ON s.id = a.student_id
		GROUP BY s.department`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications by department", err)
	}
	return scanCounts(rows)
}

func (r *ReportRepository) ApplicationsByCompany(ctx context.Context) (map[string]int, error) {
	rows, err := r.query(ctx, `SELECT i.company, COUNT(*)
		FROM applications a
		JOIN internships i ON i.id = a.internship_id
		GROUP BY i.company`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to count applications by company", err)
	}
	return scanCounts(rows)
}

func scanCounts(rows *sql.Rows) (map[string]int, error) {
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan count", err)
		}
		counts[key] = count
	}
	return counts, nil
}
