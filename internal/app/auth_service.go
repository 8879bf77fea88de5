package app

import (
	"context"
	"strings"
	"time"

	"github.com/LiveKiller/placement-website/internal/common"
	"github.com/LiveKiller/placement-website/internal/domain/profile"
	"github.com/LiveKiller/placement-website/internal/domain/user"
	"github.com/LiveKiller/placement-website/internal/security"
)

type AuthService struct {
	users    user.Repository
	students profile.StudentRepository
	faculty  profile.FacultyRepository
	hiring   profile.HiringRepository
	jwt      *security.JWTProvider
	hasher   *security.PasswordHasher
	tokenTTL time.Duration
}

func NewAuthService(users user.Repository, students profile.StudentRepository, faculty profile.FacultyRepository, hiring profile.HiringRepository, jwt *security.JWTProvider, hasher *security.PasswordHasher, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, students: students, faculty: faculty, hiring: hiring, jwt: jwt, hasher: hasher, tokenTTL: tokenTTL}
}

type RegisterInput struct {
	Email    string
	Password string
	Role     string

	// Student fields.
	FullName   string
	Course     string
	Department string

	// Hiring fields.
	CompanyName   string
	ContactNumber string

	// Faculty reuses FullName and Department.
	Position string
}

type RegisterResult struct {
	UserID common.UUID `json:"user_id"`
	Role   user.Role   `json:"role"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fields := map[string]string{}
	if email == "" {
		fields["email"] = "email is required"
	}
	if input.Password == "" {
		fields["password"] = "password is required"
	}
	role, ok := user.ParseRole(input.Role)
	if !ok {
		fields["role"] = "role must be student, faculty, or hiring"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account, err := s.users.Create(ctx, user.User{Email: email, PasswordHash: hash, Role: role})
	if err != nil {
		return nil, err
	}

	// Exactly one profile per account, fixed by role at registration.
	switch role {
	case user.RoleStudent:
		_, err = s.students.Create(ctx, profile.Student{
			UserID:     account.ID,
			FullName:   input.FullName,
			Course:     input.Course,
			Department: input.Department,
			Skills:     []string{},
		})
	case user.RoleFaculty:
		_, err = s.faculty.Create(ctx, profile.Faculty{
			UserID:     account.ID,
			FullName:   input.FullName,
			Department: input.Department,
			Position:   input.Position,
		})
	case user.RoleHiring:
		_, err = s.hiring.Create(ctx, profile.Hiring{
			UserID:        account.ID,
			CompanyName:   input.CompanyName,
			ContactNumber: input.ContactNumber,
		})
	}
	if err != nil {
		return nil, err
	}

	return &RegisterResult{UserID: account.ID, Role: role}, nil
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	UserID    common.UUID `json:"user_id"`
	Role      user.Role   `json:"role"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, common.NewValidationError("missing email or password", map[string]string{"email": "email and password are required"})
	}
	account, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, err
	}
	if !s.hasher.Compare(account.PasswordHash, password) {
		return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	token, expiresAt, err := s.jwt.Generate(account.ID, string(account.Role), s.tokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, UserID: account.ID, Role: account.Role}, nil
}
