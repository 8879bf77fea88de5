package profile

import (
	"context"

	"github.com/LiveKiller/placement-website/internal/common"
)

type StudentRepository interface {
	Create(ctx context.Context, p Student) (*Student, error)
	GetByID(ctx context.Context, id common.UUID) (*Student, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*Student, error)
	Update(ctx context.Context, p Student) (*Student, error)
	List(ctx context.Context, department, course string) ([]Student, error)
	Search(ctx context.Context, query string) ([]Student, error)
}

type FacultyRepository interface {
	Create(ctx context.Context, p Faculty) (*Faculty, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*Faculty, error)
	Update(ctx context.Context, p Faculty) (*Faculty, error)
}

type HiringRepository interface {
	Create(ctx context.Context, p Hiring) (*Hiring, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*Hiring, error)
	Update(ctx context.Context, p Hiring) (*Hiring, error)
}
