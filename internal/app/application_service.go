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

// ApplicationService is the approval workflow: students submit, faculty sign
// off first, hiring managers decide second. All status changes validate
// against the current record before any write.
type ApplicationService struct {
	repo        application.Repository
	internships internship.Repository
	students    profile.StudentRepository
	hiring      profile.HiringRepository
	now         func() time.Time
}

func NewApplicationService(repo application.Repository, internships internship.Repository, students profile.StudentRepository, hiring profile.HiringRepository) *ApplicationService {
	return &ApplicationService{repo: repo, internships: internships, students: students, hiring: hiring, now: func() time.Time { return time.Now().UTC() }}
}

func (s *ApplicationService) Submit(ctx context.Context, internshipID, studentUserID common.UUID, coverLetter string) (*application.Application, error) {
	student, err := s.studentProfile(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	posting, err := s.internships.GetByID(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	if !posting.IsActive {
		return nil, common.NewDomainError(common.CodeValidation, common.ReasonInternshipClosed, "internship is not accepting applications")
	}
	if posting.DeadlinePassed(s.now()) {
		return nil, common.NewDomainError(common.CodeValidation, common.ReasonDeadlinePassed, "application deadline has passed")
	}
	if _, err := s.repo.FindByInternshipAndStudent(ctx, internshipID, student.ID); err == nil {
		return nil, common.NewDomainError(common.CodeConflict, common.ReasonDuplicateApplication, "already applied for this internship")
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	// The store's unique pair constraint still backs this up against a
	// racing second submit.
	return s.repo.Create(ctx, application.Application{
		InternshipID: internshipID,
		StudentID:    student.ID,
		Status:       application.StatusPending,
		CoverLetter:  coverLetter,
	})
}

// FacultyApprove records the first-stage sign-off. Re-approving is a no-op
// change, so the call is idempotent.
func (s *ApplicationService) FacultyApprove(ctx context.Context, applicationID common.UUID, feedback string) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	app.FacultyApproval = true
	if strings.TrimSpace(feedback) != "" {
		app.Feedback = feedback
	}
	return s.repo.Update(ctx, *app)
}

func (s *ApplicationService) FacultyReject(ctx context.Context, applicationID common.UUID, feedback string) (*application.Application, error) {
	if strings.TrimSpace(feedback) == "" {
		return nil, common.NewDomainError(common.CodeValidation, common.ReasonFeedbackRequired, "feedback is required when rejecting an application")
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	app.Status = application.StatusRejected
	app.Feedback = feedback
	return s.repo.Update(ctx, *app)
}

// HiringApprove is the final sign-off. It is reachable only after faculty
// approval; this ordering is the workflow's central invariant.
func (s *ApplicationService) HiringApprove(ctx context.Context, applicationID, hiringUserID common.UUID, feedback string) (*application.Application, error) {
	app, err := s.ownApplication(ctx, applicationID, hiringUserID)
	if err != nil {
		return nil, err
	}
	if !app.FacultyApproval {
		return nil, common.NewDomainError(common.CodeValidation, common.ReasonFacultyApprovalMissing, "application does not have faculty approval")
	}
	app.HiringApproval = true
	app.Status = application.StatusApproved
	if strings.TrimSpace(feedback) != "" {
		app.Feedback = feedback
	}
	return s.repo.Update(ctx, *app)
}

// HiringReject does not require prior faculty approval; a manager may close
// out an application at any point.
func (s *ApplicationService) HiringReject(ctx context.Context, applicationID, hiringUserID common.UUID, feedback string) (*application.Application, error) {
	if strings.TrimSpace(feedback) == "" {
		return nil, common.NewDomainError(common.CodeValidation, common.ReasonFeedbackRequired, "feedback is required when rejecting an application")
	}
	app, err := s.ownApplication(ctx, applicationID, hiringUserID)
	if err != nil {
		return nil, err
	}
	app.Status = application.StatusRejected
	app.Feedback = feedback
	return s.repo.Update(ctx, *app)
}

func (s *ApplicationService) StudentUpdate(ctx context.Context, applicationID, studentUserID common.UUID, coverLetter string) (*application.Application, error) {
	app, err := s.studentApplication(ctx, applicationID, studentUserID)
	if err != nil {
		return nil, err
	}
	if app.Status != application.StatusPending {
		return nil, common.NewDomainError(common.CodeValidation, common.ReasonInvalidStateForEdit, "application is no longer pending")
	}
	app.CoverLetter = coverLetter
	return s.repo.Update(ctx, *app)
}

func (s *ApplicationService) StudentWithdraw(ctx context.Context, applicationID, studentUserID common.UUID) error {
	app, err := s.studentApplication(ctx, applicationID, studentUserID)
	if err != nil {
		return err
	}
	if app.Status != application.StatusPending {
		return common.NewDomainError(common.CodeValidation, common.ReasonInvalidStateForEdit, "application is no longer pending")
	}
	return s.repo.Delete(ctx, app.ID)
}

// Detail pairs an application with the records each role is allowed to see.
type Detail struct {
	Application application.Application `json:"application"`
	Internship  *internship.Internship  `json:"internship,omitempty"`
	Student     *profile.Student        `json:"student,omitempty"`
}

func (s *ApplicationService) GetForStudent(ctx context.Context, applicationID, studentUserID common.UUID) (*Detail, error) {
	app, err := s.studentApplication(ctx, applicationID, studentUserID)
	if err != nil {
		return nil, err
	}
	posting, err := s.internships.GetByID(ctx, app.InternshipID)
	if err != nil {
		return nil, err
	}
	return &Detail{Application: *app, Internship: posting}, nil
}

func (s *ApplicationService) GetForFaculty(ctx context.Context, applicationID common.UUID) (*Detail, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, *app)
}

// GetForHiring hides applications that lack faculty approval: to a hiring
// manager they do not exist yet, even on their own postings.
func (s *ApplicationService) GetForHiring(ctx context.Context, applicationID, hiringUserID common.UUID) (*Detail, error) {
	app, err := s.ownApplication(ctx, applicationID, hiringUserID)
	if err != nil {
		return nil, err
	}
	if !app.FacultyApproval {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return s.detail(ctx, *app)
}

func (s *ApplicationService) ListForStudent(ctx context.Context, studentUserID common.UUID) ([]Detail, error) {
	student, err := s.studentProfile(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	details := make([]Detail, 0, len(items))
	for _, app := range items {
		posting, err := s.internships.GetByID(ctx, app.InternshipID)
		if err != nil {
			return nil, err
		}
		details = append(details, Detail{Application: app, Internship: posting})
	}
	return details, nil
}

// ListForFaculty is system-wide: faculty review is not scoped by department.
func (s *ApplicationService) ListForFaculty(ctx context.Context, filter application.Filter) ([]Detail, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, items)
}

func (s *ApplicationService) ListForHiring(ctx context.Context, hiringUserID common.UUID, filter application.Filter) ([]Detail, error) {
	poster, err := s.hiringProfile(ctx, hiringUserID)
	if err != nil {
		return nil, err
	}
	// Applications without faculty approval are invisible to hiring
	// managers regardless of the requested filter.
	approved := true
	filter.FacultyApproval = &approved
	items, err := s.repo.ListForPoster(ctx, poster.ID, filter)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, items)
}

func (s *ApplicationService) details(ctx context.Context, items []application.Application) ([]Detail, error) {
	details := make([]Detail, 0, len(items))
	for _, app := range items {
		detail, err := s.detail(ctx, app)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *ApplicationService) detail(ctx context.Context, app application.Application) (*Detail, error) {
	posting, err := s.internships.GetByID(ctx, app.InternshipID)
	if err != nil {
		return nil, err
	}
	student, err := s.students.GetByID(ctx, app.StudentID)
	if err != nil {
		return nil, err
	}
	return &Detail{Application: app, Internship: posting, Student: student}, nil
}

func (s *ApplicationService) studentApplication(ctx context.Context, applicationID, studentUserID common.UUID) (*application.Application, error) {
	student, err := s.studentProfile(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.StudentID != student.ID {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return app, nil
}

func (s *ApplicationService) ownApplication(ctx context.Context, applicationID, hiringUserID common.UUID) (*application.Application, error) {
	poster, err := s.hiringProfile(ctx, hiringUserID)
	if err != nil {
		return nil, err
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	posting, err := s.internships.GetByID(ctx, app.InternshipID)
	if err != nil {
		return nil, err
	}
	if posting.PostedBy != poster.ID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another company", nil)
	}
	return app, nil
}

func (s *ApplicationService) studentProfile(ctx context.Context, userID common.UUID) (*profile.Student, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "student profile is required", nil)
		}
		return nil, err
	}
	return student, nil
}

func (s *ApplicationService) hiringProfile(ctx context.Context, userID common.UUID) (*profile.Hiring, error) {
	poster, err := s.hiring.GetByUserID(ctx, userID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeValidation, "hiring profile is required", nil)
		}
		return nil, err
	}
	return poster, nil
}
