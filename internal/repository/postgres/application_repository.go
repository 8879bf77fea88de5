package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/LiveKiller/placement-website/internal/common"
	"github.com/LiveKiller/placement-website/internal/domain/application"
)

const applicationColumns = `id, internship_id, student_id, status, faculty_approval, hiring_approval, cover_letter, feedback, applied_at, updated_at`

type ApplicationRepository struct {
	store
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{store{db: db}}
}

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	_, err := r.exec(ctx, `INSERT INTO applications (id, internship_id, student_id, status, faculty_approval, hiring_approval, cover_letter, feedback, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		app.ID, app.InternshipID, app.StudentID, app.Status, app.FacultyApproval, app.HiringApproval,
		app.CoverLetter, app.Feedback, app.AppliedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewDomainError(common.CodeConflict, common.ReasonDuplicateApplication, "already applied for this internship")
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	return r.findOne(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
}

func (r *ApplicationRepository) FindByInternshipAndStudent(ctx context.Context, internshipID, studentID common.UUID) (*application.Application, error) {
	return r.findOne(ctx, `SELECT `+applicationColumns+` FROM applications WHERE internship_id = $1 AND student_id = $2`, internshipID, studentID)
}

func (r *ApplicationRepository) Update(ctx context.Context, app application.Application) (*application.Application, error) {
	app.UpdatedAt = time.Now().UTC()
	result, err := r.exec(ctx, `UPDATE applications SET status = $1, faculty_approval = $2, hiring_approval = $3, cover_letter = $4, feedback = $5, updated_at = $6 WHERE id = $7`,
		app.Status, app.FacultyApproval, app.HiringApproval, app.CoverLetter, app.Feedback, app.UpdatedAt, app.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return &app, nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return nil
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	rows, err := r.query(ctx, `SELECT `+applicationColumns+` FROM applications WHERE student_id = $1 ORDER BY applied_at DESC`, studentID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student applications", err)
	}
	return scanApplications(rows)
}

func (r *ApplicationRepository) ListForPoster(ctx context.Context, postedBy common.UUID, filter application.Filter) ([]application.Application, error) {
	rows, err := r.query(ctx, `SELECT a.id, a.internship_id, a.student_id, a.status, a.faculty_approval, a.hiring_approval, a.cover_letter, a.feedback, a.applied_at, a.updated_at
		FROM applications a
		JOIN internships i ON i.id = a.internship_id
		WHERE i.posted_by = $1
			AND ($2::text IS NULL OR a.status = $2)
			AND ($3::boolean IS NULL OR a.faculty_approval = $3)
			AND ($4::uuid IS NULL OR a.internship_id = $4)
		ORDER BY a.applied_at DESC`,
		postedBy, filter.Status, filter.FacultyApproval, nullableUUID(filter.InternshipID))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company applications", err)
	}
	return scanApplications(rows)
}

func (r *ApplicationRepository) List(ctx context.Context, filter application.Filter) ([]application.Application, error) {
	rows, err := r.query(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::boolean IS NULL OR faculty_approval = $2)
			AND ($3::uuid IS NULL OR internship_id = $3)
		ORDER BY applied_at DESC`,
		filter.Status, filter.FacultyApproval, nullableUUID(filter.InternshipID))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return scanApplications(rows)
}

func (r *ApplicationRepository) CountByInternship(ctx context.Context, internshipID common.UUID) (int, error) {
	var count int
	err := r.getRow(ctx, func(row *sql.Row) error {
		return row.Scan(&count)
	}, `SELECT COUNT(*) FROM applications WHERE internship_id = $1`, internshipID)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count applications", err)
	}
	return count, nil
}

func (r *ApplicationRepository) CountByStudent(ctx context.Context, studentID common.UUID) (int, error) {
	var count int
	err := r.getRow(ctx, func(row *sql.Row) error {
		return row.Scan(&count)
	}, `SELECT COUNT(*) FROM applications WHERE student_id = $1`, studentID)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count applications", err)
	}
	return count, nil
}

func (r *ApplicationRepository) findOne(ctx context.Context, query string, args ...any) (*application.Application, error) {
	var app application.Application
	err := r.getRow(ctx, func(row *sql.Row) error {
		return row.Scan(&app.ID, &app.InternshipID, &app.StudentID, &app.Status, &app.FacultyApproval,
			&app.HiringApproval, &app.CoverLetter, &app.Feedback, &app.AppliedAt, &app.UpdatedAt)
	}, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func scanApplications(rows *sql.Rows) ([]application.Application, error) {
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		var app application.Application
		if err := rows.Scan(&app.ID, &app.InternshipID, &app.StudentID, &app.Status, &app.FacultyApproval,
			&app.HiringApproval, &app.CoverLetter, &app.Feedback, &app.AppliedAt, &app.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, app)
	}
	return items, nil
}

// nullableUUID lets an unset id filter become SQL NULL instead of an empty
// string the uuid cast would reject.
func nullableUUID(id common.UUID) any {
	if id.IsZero() {
		return nil
	}
	return id
}
