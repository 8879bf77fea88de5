package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/LiveKiller/placement-website/internal/common"
	"github.com/LiveKiller/placement-website/internal/domain/internship"
)

const internshipColumns = `id, posted_by, title, description, company, location, requirements, stipend, duration, deadline, is_active, created_at, updated_at`

type InternshipRepository struct {
	store
}

func NewInternshipRepository(db *sql.DB) *InternshipRepository {
	return &InternshipRepository{store{db: db}}
}

func (r *InternshipRepository) Create(ctx context.Context, posting internship.Internship) (*internship.Internship, error) {
	posting.ID = common.NewUUID()
	now := time.Now().UTC()
	posting.CreatedAt = now
	posting.UpdatedAt = now
	_, err := r.exec(ctx, `INSERT INTO internships (id, posted_by, title, description, company, location, requirements, stipend, duration, deadline, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		posting.ID, posting.PostedBy, posting.Title, posting.Description, posting.Company, posting.Location,
		pq.Array(posting.Requirements), posting.Stipend, posting.Duration, posting.Deadline, posting.IsActive,
		posting.CreatedAt, posting.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create internship", err)
	}
	return &posting, nil
}

func (r *InternshipRepository) Update(ctx context.Context, posting internship.Internship) (*internship.Internship, error) {
	posting.UpdatedAt = time.Now().UTC()
	result, err := r.exec(ctx, `UPDATE internships SET title = $1, description = $2, company = $3, location = $4, requirements = $5, stipend = $6, duration = $7, deadline = $8, is_active = $9, updated_at = $10
		WHERE id = $11`,
		posting.Title, posting.Description, posting.Company, posting.Location, pq.Array(posting.Requirements),
		posting.Stipend, posting.Duration, posting.Deadline, posting.IsActive, posting.UpdatedAt, posting.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update internship", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "internship not found", sql.ErrNoRows)
	}
	return &posting, nil
}

func (r *InternshipRepository) GetByID(ctx context.Context, id common.UUID) (*internship.Internship, error) {
	var posting internship.Internship
	err := r.getRow(ctx, func(row *sql.Row) error {
		return scanInternship(row, &posting)
	}, `SELECT `+internshipColumns+` FROM internships WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "internship not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load internship", err)
	}
	return &posting, nil
}

func (r *InternshipRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.exec(ctx, `DELETE FROM internships WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete internship", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "internship not found", sql.ErrNoRows)
	}
	return nil
}

func (r *InternshipRepository) ListActive(ctx context.Context) ([]internship.Internship, error) {
	rows, err := r.query(ctx, `SELECT `+internshipColumns+` FROM internships WHERE is_active = TRUE ORDER BY created_at DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list internships", err)
	}
	return scanInternships(rows)
}

func (r *InternshipRepository) ListByPoster(ctx context.Context, postedBy common.UUID, activeFilter *bool) ([]internship.Internship, error) {
	rows, err := r.query(ctx, `SELECT `+internshipColumns+` FROM internships
		WHERE posted_by = $1 AND ($2::boolean IS NULL OR is_active = $2)
		ORDER BY created_at DESC`, postedBy, activeFilter)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company internships", err)
	}
	return scanInternships(rows)
}

func (r *InternshipRepository) Search(ctx context.Context, query string) ([]internship.Internship, error) {
	pattern := "%" + query + "%"
	rows, err := r.query(ctx, `SELECT `+internshipColumns+` FROM internships
		WHERE title ILIKE $1 OR description ILIKE $1 OR company ILIKE $1
			OR EXISTS (SELECT 1 FROM unnest(requirements) requirement WHERE requirement ILIKE $1)
		ORDER BY created_at DESC`, pattern)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to search internships", err)
	}
	return scanInternships(rows)
}

type internshipScanner interface {
	Scan(dest ...any) error
}

func scanInternship(row internshipScanner, posting *internship.Internship) error {
	return row.Scan(&posting.ID, &posting.PostedBy, &posting.Title, &posting.Description, &posting.Company,
		&posting.Location, pq.Array(&posting.Requirements), &posting.Stipend, &posting.Duration,
		&posting.Deadline, &posting.IsActive, &posting.CreatedAt, &posting.UpdatedAt)
}

func scanInternships(rows *sql.Rows) ([]internship.Internship, error) {
	defer rows.Close()
	var items []internship.Internship
	for rows.Next() {
		var posting internship.Internship
		if err := scanInternship(rows, &posting); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan internship", err)
		}
		items = append(items, posting)
	}
	return items, nil
}
