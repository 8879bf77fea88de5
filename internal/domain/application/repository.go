package application

import (
	"context"

	"github.com/LiveKiller/placement-website/internal/common"
)

// Filter narrows application listings. Nil fields match everything.
type Filter struct {
	Status          *Status
	FacultyApproval *bool
	InternshipID    common.UUID
}

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByInternshipAndStudent(ctx context.Context, internshipID, studentID common.UUID) (*Application, error)
	Update(ctx context.Context, app Application) (*Application, error)
	Delete(ctx context.Context, id common.UUID) error
	ListByStudent(ctx context.Context, studentID common.UUID) ([]Application, error)
	// ListForPoster returns applications for the poster's internships only;
	// hiring-side visibility additionally requires faculty approval, which
	// callers express through the filter.
	ListForPoster(ctx context.Context, postedBy common.UUID, filter Filter) ([]Application, error)
	List(ctx context.Context, filter Filter) ([]Application, error)
	CountByInternship(ctx context.Context, internshipID common.UUID) (int, error)
	CountByStudent(ctx context.Context, studentID common.UUID) (int, error)
}
