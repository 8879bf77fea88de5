package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/LiveKiller/placement-website/internal/common"
	"github.com/LiveKiller/placement-website/internal/domain/profile"
)

const studentColumns = `id, user_id, full_name, course, department, cgpa, skills, resume_url`

type StudentProfileRepository struct {
	store
}

func NewStudentProfileRepository(db *sql.DB) *StudentProfileRepository {
	return &StudentProfileRepository{store{db: db}}
}

func (r *StudentProfileRepository) Create(ctx context.Context, p profile.Student) (*profile.Student, error) {
	p.ID = common.NewUUID()
	_, err := r.exec(ctx, `INSERT INTO student_profiles (id, user_id, full_name, course, department, cgpa, skills, resume_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.UserID, p.FullName, p.Course, p.Department, p.CGPA, pq.Array(p.Skills), p.ResumeURL)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "student profile already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create student profile", err)
	}
	return &p, nil
}

func (r *StudentProfileRepository) GetByID(ctx context.Context, id common.UUID) (*profile.Student, error) {
	return r.findOne(ctx, `SELECT `+studentColumns+` FROM student_profiles WHERE id = $1`, id)
}

func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.Student, error) {
	return r.findOne(ctx, `SELECT `+studentColumns+` FROM student_profiles WHERE user_id = $1`, userID)
}

func (r *StudentProfileRepository) Update(ctx context.Context, p profile.Student) (*profile.Student, error) {
	result, err := r.exec(ctx, `UPDATE student_profiles SET full_name = $1, course = $2, department = $3, cgpa = $4, skills = $5, resume_url = $6 WHERE id = $7`,
		p.FullName, p.Course, p.Department, p.CGPA, pq.Array(p.Skills), p.ResumeURL, p.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update student profile", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "student profile not found", sql.ErrNoRows)
	}
	return &p, nil
}

func (r *StudentProfileRepository) List(ctx context.Context, department, course string) ([]profile.Student, error) {
	rows, err := r.query(ctx, `SELECT `+studentColumns+` FROM student_profiles
		WHERE ($1 = '' OR department = $1) AND ($2 = '' OR course = $2)
		ORDER BY full_name`, department, course)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list students", err)
	}
	return scanStudents(rows)
}

func (r *StudentProfileRepository) Search(ctx context.Context, query string) ([]profile.Student, error) {
	pattern := "%" + query + "%"
	rows, err := r.query(ctx, `SELECT `+studentColumns+` FROM student_profiles
		WHERE full_name ILIKE $1 OR course ILIKE $1 OR department ILIKE $1
			OR EXISTS (SELECT 1 FROM unnest(skills) skill WHERE skill ILIKE $1)
		ORDER BY full_name`, pattern)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to search students", err)
	}
	return scanStudents(rows)
}

func (r *StudentProfileRepository) findOne(ctx context.Context, query string, arg any) (*profile.Student, error) {
	var p profile.Student
	err := r.getRow(ctx, func(row *sql.Row) error {
		return row.Scan(&p.ID, &p.UserID, &p.FullName, &p.Course, &p.Department, &p.CGPA, pq.Array(&p.Skills), &p.ResumeURL)
	}, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "student profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load student profile", err)
	}
	return &p, nil
}

func scanStudents(rows *sql.Rows) ([]profile.Student, error) {
	defer rows.Close()
	var items []profile.Student
	for rows.Next() {
		var p profile.Student
		if err := rows.Scan(&p.ID, &p.UserID, &p.FullName, &p.Course, &p.Department, &p.CGPA, pq.Array(&p.Skills), &p.ResumeURL); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan student profile", err)
		}
		items = append(items, p)
	}
	return items, nil
}

type FacultyProfileRepository struct {
	store
}

func NewFacultyProfileRepository(db *sql.DB) *FacultyProfileRepository {
	return &FacultyProfileRepository{store{db: db}}
}

func (r *FacultyProfileRepository) Create(ctx context.Context, p profile.Faculty) (*profile.Faculty, error) {
	p.ID = common.NewUUID()
	_, err := r.exec(ctx, `INSERT INTO faculty_profiles (id, user_id, full_name, department, position)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.UserID, p.FullName, p.Department, p.Position)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "faculty profile already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create faculty profile", err)
	}
	return &p, nil
}

func (r *FacultyProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.Faculty, error) {
	var p profile.Faculty
	err := r.getRow(ctx, func(row *sql.Row) error {
		return row.Scan(&p.ID, &p.UserID, &p.FullName, &p.Department, &p.Position)
	}, `SELECT id, user_id, full_name, department, position FROM faculty_profiles WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "faculty profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load faculty profile", err)
	}
	return &p, nil
}

func (r *FacultyProfileRepository) Update(ctx context.Context, p profile.Faculty) (*profile.Faculty, error) {
	result, err := r.exec(ctx, `UPDATE faculty_profiles SET full_name = $1, department = $2, position = $3 WHERE id = $4`,
		p.FullName, p.Department, p.Position, p.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update faculty profile", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "faculty profile not found", sql.ErrNoRows)
	}
	return &p, nil
}

type HiringProfileRepository struct {
	store
}

func NewHiringProfileRepository(db *sql.DB) *HiringProfileRepository {
	return &HiringProfileRepository{store{db: db}}
}

func (r *HiringProfileRepository) Create(ctx context.Context, p profile.Hiring) (*profile.Hiring, error) {
	p.ID = common.NewUUID()
	_, err := r.exec(ctx, `INSERT INTO hiring_profiles (id, user_id, company_name, company_website, company_description, contact_number)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.UserID, p.CompanyName, p.CompanyWebsite, p.CompanyDescription, p.ContactNumber)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "hiring profile already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create hiring profile", err)
	}
	return &p, nil
}

func (r *HiringProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.Hiring, error) {
	var p profile.Hiring
	err := r.getRow(ctx, func(row *sql.Row) error {
		return row.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.CompanyWebsite, &p.CompanyDescription, &p.ContactNumber)
	}, `SELECT id, user_id, company_name, company_website, company_description, contact_number FROM hiring_profiles WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "hiring profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load hiring profile", err)
	}
	return &p, nil
}

func (r *HiringProfileRepository) Update(ctx context.Context, p profile.Hiring) (*profile.Hiring, error) {
	result, err := r.exec(ctx, `UPDATE hiring_profiles SET company_name = $1, company_website = $2, company_description = $3, contact_number = $4 WHERE id = $5`,
		p.CompanyName, p.CompanyWebsite, p.CompanyDescription, p.ContactNumber, p.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update hiring profile", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "hiring profile not found", sql.ErrNoRows)
	}
	return &p, nil
}
