package app

import (
	"context"
	"strings"

	"github.com/LiveKiller/placement-website/internal/common"
	"github.com/LiveKiller/placement-website/internal/domain/profile"
	"github.com/LiveKiller/placement-website/internal/domain/user"
	"github.com/LiveKiller/placement-website/internal/security"
)

type ProfileService struct {
	users    user.Repository
	students profile.StudentRepository
	faculty  profile.FacultyRepository
	hiring   profile.HiringRepository
	hasher   *security.PasswordHasher
}

func NewProfileService(users user.Repository, students profile.StudentRepository, faculty profile.FacultyRepository, hiring profile.HiringRepository, hasher *security.PasswordHasher) *ProfileService {
	return &ProfileService{users: users, students: students, faculty: faculty, hiring: hiring, hasher: hasher}
}

// Profile is the caller's account plus the single role-specific record it owns.
type Profile struct {
	ID      common.UUID      `json:"id"`
	Email   string           `json:"email"`
	Role    user.Role        `json:"role"`
	Student *profile.Student `json:"student,omitempty"`
	Faculty *profile.Faculty `json:"faculty,omitempty"`
	Hiring  *profile.Hiring  `json:"hiring,omitempty"`
}

func (s *ProfileService) Get(ctx context.Context, userID common.UUID) (*Profile, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := &Profile{ID: account.ID, Email: account.Email, Role: account.Role}
	switch account.Role {
	case user.RoleStudent:
		result.Student, err = s.students.GetByUserID(ctx, userID)
	case user.RoleFaculty:
		result.Faculty, err = s.faculty.GetByUserID(ctx, userID)
	case user.RoleHiring:
		result.Hiring, err = s.hiring.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ProfileUpdate carries a partial edit across account and profile fields.
// Nil fields keep their current value.
type ProfileUpdate struct {
	Email    *string
	Password *string

	FullName   *string
	Course     *string
	Department *string
	CGPA       *float64
	Skills     *[]string
	ResumeURL  *string
	Position   *string

	CompanyName        *string
	CompanyWebsite     *string
	CompanyDescription *string
	ContactNumber      *string
}

func (s *ProfileService) Update(ctx context.Context, userID common.UUID, update ProfileUpdate) (*Profile, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dirty := false
	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		if email == "" {
			return nil, common.NewValidationError("invalid email", map[string]string{"email": "email must not be empty"})
		}
		if email != account.Email {
			if _, err := s.users.FindByEmail(ctx, email); err == nil {
				return nil, common.NewError(common.CodeConflict, "email already exists", nil)
			} else if !common.Is(err, common.CodeNotFound) {
				return nil, err
			}
			account.Email = email
			dirty = true
		}
	}
	if update.Password != nil {
		if *update.Password == "" {
			return nil, common.NewValidationError("invalid password", map[string]string{"password": "password must not be empty"})
		}
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
		}
		account.PasswordHash = hash
		dirty = true
	}
	if dirty {
		if _, err := s.users.Update(ctx, *account); err != nil {
			return nil, err
		}
	}

	switch account.Role {
	case user.RoleStudent:
		if err := s.updateStudent(ctx, userID, update); err != nil {
			return nil, err
		}
	case user.RoleFaculty:
		if err := s.updateFaculty(ctx, userID, update); err != nil {
			return nil, err
		}
	case user.RoleHiring:
		if err := s.updateHiring(ctx, userID, update); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, userID)
}

func (s *ProfileService) updateStudent(ctx context.Context, userID common.UUID, update ProfileUpdate) error {
	current, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if update.FullName != nil {
		current.FullName = *update.FullName
	}
	if update.Course != nil {
		current.Course = *update.Course
	}
	if update.Department != nil {
		current.Department = *update.Department
	}
	if update.CGPA != nil {
		current.CGPA = *update.CGPA
	}
	if update.Skills != nil {
		current.Skills = *update.Skills
	}
	if update.ResumeURL != nil {
		current.ResumeURL = *update.ResumeURL
	}
	_, err = s.students.Update(ctx, *current)
	return err
}

func (s *ProfileService) updateFaculty(ctx context.Context, userID common.UUID, update ProfileUpdate) error {
	current, err := s.faculty.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if update.FullName != nil {
		current.FullName = *update.FullName
	}
	if update.Department != nil {
		current.Department = *update.Department
	}
	if update.Position != nil {
		current.Position = *update.Position
	}
	_, err = s.faculty.Update(ctx, *current)
	return err
}

func (s *ProfileService) updateHiring(ctx context.Context, userID common.UUID, update ProfileUpdate) error {
	current, err := s.hiring.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if update.CompanyName != nil {
		current.CompanyName = *update.CompanyName
	}
	if update.CompanyWebsite != nil {
		current.CompanyWebsite = *update.CompanyWebsite
	}
	if update.CompanyDescription != nil {
		current.CompanyDescription = *update.CompanyDescription
	}
	if update.ContactNumber != nil {
		current.ContactNumber = *update.ContactNumber
	}
	_, err = s.hiring.Update(ctx, *current)
	return err
}
