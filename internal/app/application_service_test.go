package app

import (
	"context"
	"testing"
	"time"

	"github.com/LiveKiller/placement-website/internal/common"
	"github.com/LiveKiller/placement-website/internal/domain/application"
	"github.com/LiveKiller/placement-website/internal/domain/internship"
	"github.com/LiveKiller/placement-website/internal/domain/profile"
)

type workflowFixture struct {
	service     *ApplicationService
	repo        *fakeApplicationRepo
	internships *fakeInternshipRepo
	students    *fakeStudentRepo
	hiring      *fakeHiringRepo

	studentUserID common.UUID
	student       *profile.Student
	hiringUserID  common.UUID
	poster        *profile.Hiring
	posting       *internship.Internship
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	ctx := context.Background()
	students := newFakeStudentRepo()
	hiring := newFakeHiringRepo()
	internships := newFakeInternshipRepo()
	repo := newFakeApplicationRepo(internships)

	studentUserID := common.NewUUID()
	student, err := students.Create(ctx, profile.Student{UserID: studentUserID, FullName: "Asha Nair", Department: "CSE", Course: "B.Tech"})
	if err != nil {
		t.Fatalf("create student: %v", err)
	}
	hiringUserID := common.NewUUID()
	poster, err := hiring.Create(ctx, profile.Hiring{UserID: hiringUserID, CompanyName: "Initech"})
	if err != nil {
		t.Fatalf("create hiring profile: %v", err)
	}
	posting, err := internships.Create(ctx, internship.Internship{
		PostedBy:    poster.ID,
		Title:       "Backend Intern",
		Description: "Go services",
		Company:     "Initech",
		Location:    "Remote",
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("create internship: %v", err)
	}

	service := NewApplicationService(repo, internships, students, hiring)
	return &workflowFixture{
		service:       service,
		repo:          repo,
		internships:   internships,
		students:      students,
		hiring:        hiring,
		studentUserID: studentUserID,
		student:       student,
		hiringUserID:  hiringUserID,
		poster:        poster,
		posting:       posting,
	}
}

func TestSubmitCreatesPendingApplication(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	app, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "I would like to apply")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if app.Status != application.StatusPending {
		t.Fatalf("status = %q, want pending", app.Status)
	}
	if app.FacultyApproval || app.HiringApproval {
		t.Fatalf("new application must not carry approvals")
	}
	if app.StudentID != f.student.ID {
		t.Fatalf("student id = %s, want %s", app.StudentID, f.student.ID)
	}
}

func TestSubmitRequiresStudentProfile(t *testing.T) {
	f := newWorkflowFixture(t)

	_, err := f.service.Submit(context.Background(), f.posting.ID, common.NewUUID(), "")
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestSubmitRejectsInactiveInternship(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	f.posting.IsActive = false
	if _, err := f.internships.Update(ctx, *f.posting); err != nil {
		t.Fatalf("update posting: %v", err)
	}

	_, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "")
	if !common.ReasonIs(err, common.ReasonInternshipClosed) {
		t.Fatalf("err = %v, want reason %s", err, common.ReasonInternshipClosed)
	}
}

func TestSubmitRejectsPastDeadline(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	deadline := time.Now().UTC().Add(-time.Hour)
	f.posting.Deadline = &deadline
	if _, err := f.internships.Update(ctx, *f.posting); err != nil {
		t.Fatalf("update posting: %v", err)
	}

	_, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "")
	if !common.ReasonIs(err, common.ReasonDeadlinePassed) {
		t.Fatalf("err = %v, want reason %s", err, common.ReasonDeadlinePassed)
	}
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	if _, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, ""); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "")
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
	if !common.ReasonIs(err, common.ReasonDuplicateApplication) {
		t.Fatalf("err = %v, want reason %s", err, common.ReasonDuplicateApplication)
	}
}

func TestFacultyApproveIsIdempotent(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	app, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	first, err := f.service.FacultyApprove(ctx, app.ID, "strong candidate")
	if err != nil {
		t.Fatalf("faculty approve: %v", err)
	}
	if !first.FacultyApproval {
		t.Fatal("faculty approval not set")
	}
	if first.Status != application.StatusPending {
		t.Fatalf("status = %q, faculty approval must not finalize", first.Status)
	}

	second, err := f.service.FacultyApprove(ctx, app.ID, "")
	if err != nil {
		t.Fatalf("repeat faculty approve: %v", err)
	}
	if !second.FacultyApproval || second.Feedback != "strong candidate" {
		t.Fatalf("repeat approve changed record: %+v", second)
	}
}

func TestFacultyRejectRequiresFeedback(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	app, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := f.service.FacultyReject(ctx, app.ID, "  "); !common.ReasonIs(err, common.ReasonFeedbackRequired) {
		t.Fatalf("err = %v, want reason %s", err, common.ReasonFeedbackRequired)
	}

	rejected, err := f.service.FacultyReject(ctx, app.ID, "incomplete resume")
	if err != nil {
		t.Fatalf("faculty reject: %v", err)
	}
	if rejected.Status != application.StatusRejected || rejected.Feedback != "incomplete resume" {
		t.Fatalf("rejected = %+v", rejected)
	}
}

func TestHiringApproveRequiresFacultyApproval(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	app, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	_, err = f.service.HiringApprove(ctx, app.ID, f.hiringUserID, "")
	if !common.ReasonIs(err, common.ReasonFacultyApprovalMissing) {
		t.Fatalf("err = %v, want reason %s", err, common.ReasonFacultyApprovalMissing)
	}

	if _, err := f.service.FacultyApprove(ctx, app.ID, ""); err != nil {
		t.Fatalf("faculty approve: %v", err)
	}
	approved, err := f.service.HiringApprove(ctx, app.ID, f.hiringUserID, "welcome aboard")
	if err != nil {
		t.Fatalf("hiring approve: %v", err)
	}
	if approved.Status != application.StatusApproved || !approved.HiringApproval {
		t.Fatalf("approved = %+v", approved)
	}
}

func TestHiringRejectAllowedBeforeFacultyApproval(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	app, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := f.service.HiringReject(ctx, app.ID, f.hiringUserID, ""); !common.ReasonIs(err, common.ReasonFeedbackRequired) {
		t.Fatalf("err = %v, want reason %s", err, common.ReasonFeedbackRequired)
	}

	rejected, err := f.service.HiringReject(ctx, app.ID, f.hiringUserID, "position filled")
	if err != nil {
		t.Fatalf("hiring reject: %v", err)
	}
	if rejected.Status != application.StatusRejected {
		t.Fatalf("status = %q, want rejected", rejected.Status)
	}
}

func TestHiringActionsScopedToOwnPostings(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	app, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := f.service.FacultyApprove(ctx, app.ID, ""); err != nil {
		t.Fatalf("faculty approve: %v", err)
	}

	otherUserID := common.NewUUID()
	if _, err := f.hiring.Create(ctx, profile.Hiring{UserID: otherUserID, CompanyName: "Globex"}); err != nil {
		t.Fatalf("create other hiring profile: %v", err)
	}
	if _, err := f.service.HiringApprove(ctx, app.ID, otherUserID, ""); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
	if _, err := f.service.GetForHiring(ctx, app.ID, otherUserID); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestStudentEditOnlyWhilePending(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	app, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "first draft")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	updated, err := f.service.StudentUpdate(ctx, app.ID, f.studentUserID, "second draft")
	if err != nil {
		t.Fatalf("student update: %v", err)
	}
	if updated.CoverLetter != "second draft" {
		t.Fatalf("cover letter = %q", updated.CoverLetter)
	}

	if _, err := f.service.FacultyReject(ctx, app.ID, "not eligible"); err != nil {
		t.Fatalf("faculty reject: %v", err)
	}
	if _, err := f.service.StudentUpdate(ctx, app.ID, f.studentUserID, "third draft"); !common.ReasonIs(err, common.ReasonInvalidStateForEdit) {
		t.Fatalf("err = %v, want reason %s", err, common.ReasonInvalidStateForEdit)
	}
	if err := f.service.StudentWithdraw(ctx, app.ID, f.studentUserID); !common.ReasonIs(err, common.ReasonInvalidStateForEdit) {
		t.Fatalf("err = %v, want reason %s", err, common.ReasonInvalidStateForEdit)
	}
}

func TestStudentWithdrawRemovesApplication(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	app, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.service.StudentWithdraw(ctx, app.ID, f.studentUserID); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if _, err := f.repo.GetByID(ctx, app.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}

	// A withdrawn application frees the slot for a fresh submit.
	if _, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "trying again"); err != nil {
		t.Fatalf("resubmit after withdraw: %v", err)
	}
}

func TestStudentCannotSeeOthersApplications(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	app, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	otherUserID := common.NewUUID()
	if _, err := f.students.Create(ctx, profile.Student{UserID: otherUserID, FullName: "Ravi Kumar"}); err != nil {
		t.Fatalf("create other student: %v", err)
	}
	if _, err := f.service.GetForStudent(ctx, app.ID, otherUserID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestHiringVisibilityRequiresFacultyApproval(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	app, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := f.service.GetForHiring(ctx, app.ID, f.hiringUserID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("err = %v, want not found before faculty approval", err)
	}
	details, err := f.service.ListForHiring(ctx, f.hiringUserID, application.Filter{})
	if err != nil {
		t.Fatalf("list for hiring: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("unapproved application visible to hiring: %d items", len(details))
	}

	if _, err := f.service.FacultyApprove(ctx, app.ID, ""); err != nil {
		t.Fatalf("faculty approve: %v", err)
	}
	detail, err := f.service.GetForHiring(ctx, app.ID, f.hiringUserID)
	if err != nil {
		t.Fatalf("get for hiring: %v", err)
	}
	if detail.Student == nil || detail.Student.ID != f.student.ID {
		t.Fatalf("detail missing student record: %+v", detail)
	}
	details, err = f.service.ListForHiring(ctx, f.hiringUserID, application.Filter{})
	if err != nil {
		t.Fatalf("list for hiring: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("got %d applications, want 1", len(details))
	}
}

func TestListForFacultyFilters(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	app, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	otherUserID := common.NewUUID()
	if _, err := f.students.Create(ctx, profile.Student{UserID: otherUserID, FullName: "Ravi Kumar"}); err != nil {
		t.Fatalf("create other student: %v", err)
	}
	other, err := f.service.Submit(ctx, f.posting.ID, otherUserID, "")
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if _, err := f.service.FacultyReject(ctx, other.ID, "low cgpa"); err != nil {
		t.Fatalf("faculty reject: %v", err)
	}

	pending := application.StatusPending
	details, err := f.service.ListForFaculty(ctx, application.Filter{Status: &pending})
	if err != nil {
		t.Fatalf("list for faculty: %v", err)
	}
	if len(details) != 1 || details[0].Application.ID != app.ID {
		t.Fatalf("pending filter returned %d items", len(details))
	}

	all, err := f.service.ListForFaculty(ctx, application.Filter{})
	if err != nil {
		t.Fatalf("list for faculty: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d applications, want 2", len(all))
	}
}

func TestFullApprovalLifecycle(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	deadline := time.Now().UTC().Add(30 * 24 * time.Hour)
	f.posting.Deadline = &deadline
	if _, err := f.internships.Update(ctx, *f.posting); err != nil {
		t.Fatalf("update posting: %v", err)
	}

	submitted, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, "X")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Status != application.StatusPending || submitted.FacultyApproval || submitted.HiringApproval {
		t.Fatalf("submitted = %+v", submitted)
	}

	reviewed, err := f.service.FacultyApprove(ctx, submitted.ID, "Good fit")
	if err != nil {
		t.Fatalf("faculty approve: %v", err)
	}
	if !reviewed.FacultyApproval || reviewed.Status != application.StatusPending || reviewed.Feedback != "Good fit" {
		t.Fatalf("reviewed = %+v", reviewed)
	}

	approved, err := f.service.HiringApprove(ctx, submitted.ID, f.hiringUserID, "")
	if err != nil {
		t.Fatalf("hiring approve: %v", err)
	}
	if approved.Status != application.StatusApproved || !approved.HiringApproval {
		t.Fatalf("approved = %+v", approved)
	}

	if err := f.service.StudentWithdraw(ctx, submitted.ID, f.studentUserID); !common.ReasonIs(err, common.ReasonInvalidStateForEdit) {
		t.Fatalf("withdraw after approval: err = %v, want reason %s", err, common.ReasonInvalidStateForEdit)
	}
}

func TestListForStudentIncludesPosting(t *testing.T) {
	f := newWorkflowFixture(t)
	ctx := context.Background()

	if _, err := f.service.Submit(ctx, f.posting.ID, f.studentUserID, ""); err != nil {
		t.Fatalf("submit: %v", err)
	}
	details, err := f.service.ListForStudent(ctx, f.studentUserID)
	if err != nil {
		t.Fatalf("list for student: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("got %d applications, want 1", len(details))
	}
	if details[0].Internship == nil || details[0].Internship.ID != f.posting.ID {
		t.Fatalf("detail missing internship: %+v", details[0])
	}
	if details[0].Student != nil {
		t.Fatal("student view must not embed the student record")
	}
}
