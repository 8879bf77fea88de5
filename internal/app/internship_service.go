package app

import (
	"context"
	"strings"
	"time"

	"github.com/LiveKiller/placement-website/internal/common"
	"github.com/LiveKiller/placement-website/internal/domain/application"
	"github.com/LiveKiller/placement-website/internal/domain/internship"
	"github.com/LiveKiller/placement-website/internal/domain/profile"
)

type InternshipService struct {
	repo         internship.Repository
	hiring       profile.HiringRepository
	students     profile.StudentRepository
	applications application.Repository
	now          func() time.Time
}

func NewInternshipService(repo internship.Repository, hiring profile.HiringRepository, students profile.StudentRepository, applications application.Repository) *InternshipService {
	return &InternshipService{repo: repo, hiring: hiring, students: students, applications: applications, now: func() time.Time { return time.Now().UTC() }}
}

func (s *InternshipService) Create(ctx context.Context, hiringUserID common.UUID, posting internship.Internship) (*internship.Internship, error) {
	poster, err := s.hiring.GetByUserID(ctx, hiringUserID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "hiring profile is required", nil)
		}
		return nil, err
	}
	fields := map[string]string{}
	if strings.TrimSpace(posting.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(posting.Description) == "" {
		fields["description"] = "description is required"
	}
	if strings.TrimSpace(posting.Company) == "" {
		fields["company"] = "company is required"
	}
	if strings.TrimSpace(posting.Location) == "" {
		fields["location"] = "location is required"
	}
	if len(posting.Requirements) == 0 {
		fields["requirements"] = "requirements are required"
	}
	if len(fields) > 0 {
		return nil, common.NewMissingFieldError(fields)
	}
	posting.PostedBy = poster.ID
	posting.IsActive = true
	return s.repo.Create(ctx, posting)
}

func (s *InternshipService) Update(ctx context.Context, hiringUserID, internshipID common.UUID, update internship.Update) (*internship.Internship, error) {
	current, err := s.ownPosting(ctx, hiringUserID, internshipID)
	if err != nil {
		return nil, err
	}
	if update.Title != nil {
		current.Title = *update.Title
	}
	if update.Description != nil {
		current.Description = *update.Description
	}
	if update.Company != nil {
		current.Company = *update.Company
	}
	if update.Location != nil {
		current.Location = *update.Location
	}
	if update.Requirements != nil {
		current.Requirements = *update.Requirements
	}
	if update.Stipend != nil {
		current.Stipend = *update.Stipend
	}
	if update.Duration != nil {
		current.Duration = *update.Duration
	}
	if update.Deadline != nil {
		current.Deadline = update.Deadline
	}
	if update.IsActive != nil {
		current.IsActive = *update.IsActive
	}
	return s.repo.Update(ctx, *current)
}

func (s *InternshipService) Delete(ctx context.Context, hiringUserID, internshipID common.UUID) error {
	current, err := s.ownPosting(ctx, hiringUserID, internshipID)
	if err != nil {
		return err
	}
	count, err := s.applications.CountByInternship(ctx, current.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return common.NewDomainError(common.CodeConflict, common.ReasonHasApplications, "cannot delete internship with existing applications")
	}
	return s.repo.Delete(ctx, current.ID)
}

// StudentView annotates a posting with the calling student's state.
type StudentView struct {
	internship.Internship
	AlreadyApplied bool `json:"already_applied"`
	DeadlinePassed bool `json:"deadline_passed"`
}

func (s *InternshipService) ListForStudent(ctx context.Context, studentUserID common.UUID) ([]StudentView, error) {
	student, err := s.students.GetByUserID(ctx, studentUserID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "student profile is required", nil)
		}
		return nil, err
	}
	postings, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	applications, err := s.applications.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	applied := make(map[common.UUID]bool, len(applications))
	for _, app := range applications {
		applied[app.InternshipID] = true
	}
	now := s.now()
	views := make([]StudentView, 0, len(postings))
	for _, posting := range postings {
		views = append(views, StudentView{
			Internship:     posting,
			AlreadyApplied: applied[posting.ID],
			DeadlinePassed: posting.DeadlinePassed(now),
		})
	}
	return views, nil
}

// PosterView is the owner's view of a posting with its application volume.
type PosterView struct {
	internship.Internship
	ApplicationsCount int `json:"applications_count"`
}

func (s *InternshipService) ListForPoster(ctx context.Context, hiringUserID common.UUID, statusFilter string) ([]PosterView, error) {
	poster, err := s.hiring.GetByUserID(ctx, hiringUserID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "hiring profile is required", nil)
		}
		return nil, err
	}
	var activeFilter *bool
	switch strings.ToLower(strings.TrimSpace(statusFilter)) {
	case "active":
		active := true
		activeFilter = &active
	case "inactive":
		active := false
		activeFilter = &active
	case "", "all":
	default:
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be active, inactive, or all"})
	}
	postings, err := s.repo.ListByPoster(ctx, poster.ID, activeFilter)
	if err != nil {
		return nil, err
	}
	views := make([]PosterView, 0, len(postings))
	for _, posting := range postings {
		count, err := s.applications.CountByInternship(ctx, posting.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, PosterView{Internship: posting, ApplicationsCount: count})
	}
	return views, nil
}

func (s *InternshipService) GetForPoster(ctx context.Context, hiringUserID, internshipID common.UUID) (*PosterView, error) {
	current, err := s.ownPosting(ctx, hiringUserID, internshipID)
	if err != nil {
		return nil, err
	}
	count, err := s.applications.CountByInternship(ctx, current.ID)
	if err != nil {
		return nil, err
	}
	return &PosterView{Internship: *current, ApplicationsCount: count}, nil
}

func (s *InternshipService) ownPosting(ctx context.Context, hiringUserID, internshipID common.UUID) (*internship.Internship, error) {
	poster, err := s.hiring.GetByUserID(ctx, hiringUserID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "hiring profile is required", nil)
		}
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	if current.PostedBy != poster.ID {
		return nil, common.NewError(common.CodeForbidden, "internship belongs to another company", nil)
	}
	return current, nil
}
