package internship

import (
	"context"

	"github.com/LiveKiller/placement-website/internal/common"
)

type Repository interface {
	Create(ctx context.Context, posting Internship) (*Internship, error)
	Update(ctx context.Context, posting Internship) (*Internship, error)
	GetByID(ctx context.Context, id common.UUID) (*Internship, error)
	Delete(ctx context.Context, id common.UUID) error
	ListActive(ctx context.Context) ([]Internship, error)
	ListByPoster(ctx context.Context, postedBy common.UUID, activeFilter *bool) ([]Internship, error)
	Search(ctx context.Context, query string) ([]Internship, error)
}
